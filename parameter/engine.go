package parameter

// Simulation
const (
	DefaultTickRate  = 20 // Ticks per second in the sandbox
	DefaultMapWidth  = 64
	DefaultMapHeight = 32
	DefaultSeed      = 1
)

// Spatial grid
const (
	// ReachabilityCacheSize bounds cached distance fields, one per origin cell
	ReachabilityCacheSize = 16
)

// Terrain cover fill per scenario tile
const (
	SandbagFill = 0.55
	CrateFill   = 0.75
)

// Event queue
const (
	EventQueueSize  = 256 // Must be power of 2
	EventBufferMask = EventQueueSize - 1
)

// System priorities, lower runs first
const (
	PriorityTurret   = 10
	PriorityDispatch = 80 // Event handlers run after all simulation systems
)
