package event

import "github.com/lixenwraith/sentry/core"

// EventType represents the type of simulation event
type EventType int

const (
	// EventTargetAcquired fires when a turret selects a new target
	// Trigger: TurretSystem search | Payload: *TargetPayload
	EventTargetAcquired EventType = iota

	// EventTargetLost fires when the current target is dropped
	// Trigger: TurretSystem revalidation | Payload: *TargetPayload
	EventTargetLost

	// EventAimAligned fires on the transition into the ready state
	// Trigger: TurretSystem rotation | Payload: *AimPayload
	EventAimAligned

	// EventShotDelayed fires when warmup is extended because aim is off target
	// Trigger: TurretSystem rotation | Payload: *AimPayload
	EventShotDelayed

	// EventShotFired fires when warmup completes on a hittable target
	// Trigger: TurretSystem | Consumer: AudioSystem, sandbox log | Payload: *ShotPayload
	EventShotFired

	// EventTurretRested fires when an idle turret reaches its rest angle
	// Trigger: TurretSystem | Payload: *AimPayload
	EventTurretRested
)

var typeNames = map[EventType]string{
	EventTargetAcquired: "target_acquired",
	EventTargetLost:     "target_lost",
	EventAimAligned:     "aim_aligned",
	EventShotDelayed:    "shot_delayed",
	EventShotFired:      "shot_fired",
	EventTurretRested:   "turret_rested",
}

// String returns the snake_case event name
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is a queued simulation event
type Event struct {
	Type    EventType
	Payload any
	Tick    int64
}

// LostReason explains why a turret dropped its target
type LostReason uint8

const (
	LostDestroyed LostReason = iota
	LostOutOfRange
	LostInvalid
)

func (r LostReason) String() string {
	switch r {
	case LostDestroyed:
		return "destroyed"
	case LostOutOfRange:
		return "out_of_range"
	default:
		return "invalid"
	}
}

// TargetPayload describes a target change
type TargetPayload struct {
	Turret core.Entity
	Target core.Entity
	Reason LostReason // Only meaningful for EventTargetLost
}

// AimPayload describes the turret angle at an aim transition
type AimPayload struct {
	Turret core.Entity
	Angle  float64
	Delta  float64 // Remaining signed delta to the target bearing
}

// ShotPayload describes a fired shot
type ShotPayload struct {
	Turret core.Entity
	Target core.Entity
	Weapon string
	From   core.Point
	To     core.Point
}
