package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
	// MinSoundGap between two cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Acquire cue, two rising sine notes
const (
	AcquireNote1Freq    = 660.0
	AcquireNote2Freq    = 990.0
	AcquireNoteDuration = 60 * time.Millisecond
	AcquireSoundAttack  = 5 * time.Millisecond
	AcquireSoundRelease = 30 * time.Millisecond
)

// Fire cue, noise burst over a low thump
const (
	FireSoundDuration = 120 * time.Millisecond
	FireSoundAttack   = 2 * time.Millisecond
	FireSoundRelease  = 90 * time.Millisecond
	FireThumpFreq     = 70.0
)

// Lost cue, short falling square
const (
	LostSoundDuration = 90 * time.Millisecond
	LostSoundAttack   = 5 * time.Millisecond
	LostSoundRelease  = 40 * time.Millisecond
	LostSoundFreq     = 220.0
)
