package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/sentry/parameter"
)

// SoundManager plays turret cues through the system speaker
// All methods are safe to call before Initialize, they do nothing until the speaker is up
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool

	lastPlayed [cueCount]time.Time
	plays      uint64 // Seeds noise so consecutive shots differ
	now        func() time.Time
}

// NewSoundManager creates a sound manager
func NewSoundManager(cfg Config) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker, a disabled config leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close, an empty mixer is silent
	sm.initialized = false
}

// IsInitialized reports whether the speaker is running
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a cue, repeated cues within MinSoundGap are dropped
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c < 0 || c >= cueCount {
		return
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[c]) < parameter.MinSoundGap {
		return
	}

	sm.plays++
	s, err := cueStreamer(c, sm.cfg, sm.plays)
	if err != nil {
		return
	}
	sm.lastPlayed[c] = now

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
