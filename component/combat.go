package component

import "github.com/lixenwraith/sentry/core"

// CombatTargetComponent makes an entity visible to the target cache
type CombatTargetComponent struct {
	PriorityFactor float64 // Multiplies final score, 0 suppresses selection weight to the floor
	ThreatDisabled bool    // Cannot currently act as a threat (suppressed, fleeing)
	AutoTargetable bool
	ActiveThreat   bool
	AimingAt       core.Entity // Entity this target is currently aiming at, 0 if none
}

// AttackRecordComponent remembers the last target an attacker engaged
type AttackRecordComponent struct {
	Target core.Entity
	Tick   int64
}

// BurningComponent marks an entity that is on fire
type BurningComponent struct{}

// ExplosiveComponent marks an entity carrying an explosive charge
type ExplosiveComponent struct {
	WickStarted bool
}
