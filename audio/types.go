package audio

import "errors"

// Cue identifies a turret sound
type Cue int

const (
	CueAcquire Cue = iota // Target acquired
	CueFire               // Shot fired
	CueLost               // Target lost
	cueCount
)

// String returns the cue name used in logs
func (c Cue) String() string {
	switch c {
	case CueAcquire:
		return "acquire"
	case CueFire:
		return "fire"
	case CueLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Config controls playback
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 to 1.0
	SampleRate   int
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns audio settings with all cues at full volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		CueVolumes:   [cueCount]float64{CueAcquire: 0.6, CueFire: 1.0, CueLost: 0.5},
	}
}

var ErrUnknownCue = errors.New("unknown cue")
