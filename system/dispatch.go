package system

import (
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/parameter"
	"go.uber.org/zap"
)

// DispatchSystem routes the tick's events to registered handlers
type DispatchSystem struct {
	router *engine.EventRouter
	logger *zap.Logger
	total  int
}

// NewDispatchSystem creates a dispatcher over the router
func NewDispatchSystem(router *engine.EventRouter, logger *zap.Logger) *DispatchSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DispatchSystem{router: router, logger: logger}
}

func (s *DispatchSystem) Name() string  { return "dispatch" }
func (s *DispatchSystem) Priority() int { return parameter.PriorityDispatch }

func (s *DispatchSystem) Update() {
	s.total += s.router.DispatchAll()
	if lost := s.router.TakeDropped(); lost > 0 {
		s.logger.Warn("event queue overflow", zap.Uint64("dropped", lost))
	}
}

// Dispatched returns the number of events routed since creation
func (s *DispatchSystem) Dispatched() int {
	return s.total
}
