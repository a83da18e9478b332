package audio

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// AudioService wraps SoundManager as a service.Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	manager  *SoundManager
	logger   *zap.Logger
	disabled atomic.Bool
}

// NewService creates an audio service
func NewService(logger *zap.Logger) *AudioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioService{logger: logger}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: Config, defaults to DefaultConfig()
func (s *AudioService) Init(args ...any) error {
	cfg := DefaultConfig()
	if len(args) > 0 {
		if c, ok := args[0].(Config); ok {
			cfg = c
		}
	}
	s.manager = NewSoundManager(cfg)
	if !cfg.Enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements Service
// A missing audio device disables the service instead of failing
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.logger.Warn("audio disabled", zap.Error(err))
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled reports whether audio is unavailable or turned off
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the cue player, nil when disabled
func (s *AudioService) Player() Player {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	return s.manager
}
