package component

import "github.com/lixenwraith/sentry/core"

// TurretState is the aim controller state
type TurretState uint8

const (
	// TurretIdle has no target, rotates toward rest angle when cooled down
	TurretIdle TurretState = iota
	// TurretTracking has a target and is rotating toward it
	TurretTracking
	// TurretReady is aligned within one rotation step of its target
	TurretReady
)

// String returns a short label for render and logs
func (s TurretState) String() string {
	switch s {
	case TurretIdle:
		return "idle"
	case TurretTracking:
		return "tracking"
	case TurretReady:
		return "ready"
	default:
		return "unknown"
	}
}

// TurretComponent holds rotation-limited turret runtime state
// Angle is in degrees, always within [0, 360)
type TurretComponent struct {
	Angle         float64
	RotationSpeed float64 // Degrees per tick
	RestAngle     float64

	WarmupTicksLeft   int // 0 when no shot is queued
	CooldownTicksLeft int

	Target core.Entity
	State  TurretState

	Mortar bool // Overhead-firing artillery, never targets under thick roof
}

// WeaponComponent references a weapon definition by registry id
type WeaponComponent struct {
	ID string
}

// MannableComponent marks a turret that can be operated by a pawn
type MannableComponent struct {
	MannedBy core.Entity // 0 when unmanned
}

// BuildingComponent marks a static structure
type BuildingComponent struct {
	Kind string
}
