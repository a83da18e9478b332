package parameter

// Turret defaults, overridden by weapon tables
const (
	TurretDefaultRotationSpeed = 5.0 // Degrees per tick
	TurretDefaultWarmupTicks   = 30
	TurretDefaultCooldownTicks = 60

	// TurretRetargetInterval throttles target searches while idle
	TurretRetargetInterval = 1
)
