package system

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/sentry/event"
	"github.com/lixenwraith/sentry/status"
	"go.uber.org/zap"
)

// EventLog writes turret events to the logger and counts them in the metrics registry
type EventLog struct {
	logger *zap.Logger

	acquired *atomic.Int64
	lost     *atomic.Int64
	fired    *atomic.Int64
	last     *status.Text
}

// NewEventLog creates an event log handler, a nil registry keeps the counters private
func NewEventLog(logger *zap.Logger, metrics *status.Registry) *EventLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	return &EventLog{
		logger:   logger,
		acquired: metrics.Counter(status.MetricTargetsFound),
		lost:     metrics.Counter(status.MetricTargetsLost),
		fired:    metrics.Counter(status.MetricShotsFired),
		last:     metrics.Text(status.MetricLastEvent),
	}
}

func (l *EventLog) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTargetAcquired,
		event.EventTargetLost,
		event.EventAimAligned,
		event.EventShotDelayed,
		event.EventShotFired,
		event.EventTurretRested,
	}
}

func (l *EventLog) HandleEvent(ev event.Event) {
	fields := []zap.Field{
		zap.String("event", ev.Type.String()),
		zap.Int64("tick", ev.Tick),
	}

	switch p := ev.Payload.(type) {
	case *event.TargetPayload:
		fields = append(fields, zap.Uint64("turret", uint64(p.Turret)), zap.Uint64("target", uint64(p.Target)))
		if ev.Type == event.EventTargetLost {
			fields = append(fields, zap.Stringer("reason", p.Reason))
			l.lost.Add(1)
			l.last.Store(fmt.Sprintf("#%d lost #%d (%s)", p.Turret, p.Target, p.Reason))
		} else {
			l.acquired.Add(1)
			l.last.Store(fmt.Sprintf("#%d acquired #%d", p.Turret, p.Target))
		}
	case *event.AimPayload:
		fields = append(fields,
			zap.Uint64("turret", uint64(p.Turret)),
			zap.Float64("angle", p.Angle),
			zap.Float64("delta", p.Delta))
	case *event.ShotPayload:
		fields = append(fields,
			zap.Uint64("turret", uint64(p.Turret)),
			zap.Uint64("target", uint64(p.Target)),
			zap.String("weapon", p.Weapon))
		l.fired.Add(1)
		l.last.Store(fmt.Sprintf("#%d fired %s at #%d", p.Turret, p.Weapon, p.Target))
	}

	// Per-tick aim chatter stays at debug
	if ev.Type == event.EventShotDelayed || ev.Type == event.EventAimAligned {
		l.logger.Debug("turret event", fields...)
		return
	}
	l.logger.Info("turret event", fields...)
}

// Last returns a one-line summary of the latest notable event
func (l *EventLog) Last() string {
	return l.last.Load()
}
