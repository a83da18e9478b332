package system

import (
	"testing"

	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/event"
	"github.com/lixenwraith/sentry/status"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventLog_DispatchedEachTick(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	w := newTurretWorld(t, 32)
	placeTurret(t, w, core.Point{X: 10, Y: 10}, "rifle", 0)
	target := placePawn(t, w, core.Point{X: 10, Y: 14}, raiders, raider())

	router := engine.NewEventRouter(w.Events())
	metrics := status.NewRegistry()
	log := NewEventLog(zap.New(obs), metrics)
	router.Register(log)
	dispatch := NewDispatchSystem(router, zap.NewNop())

	w.AddSystem(dispatch)
	w.AddSystem(NewTurretSystem(w, newCatalog(t), nil, DefaultTurretConfig()))

	for i := 0; i < 6; i++ {
		w.Update()
	}

	if w.Events().Len() != 0 {
		t.Errorf("events left in queue: %d", w.Events().Len())
	}
	if dispatch.Dispatched() == 0 {
		t.Fatal("nothing dispatched")
	}

	acquired := logs.FilterField(zap.String("event", "target_acquired"))
	if acquired.Len() != 1 {
		t.Fatalf("acquired entries = %d, want 1", acquired.Len())
	}
	if got := acquired.All()[0].ContextMap()["target"]; got != uint64(target) {
		t.Errorf("logged target %v, want %d", got, target)
	}
	if logs.FilterField(zap.String("event", "shot_fired")).Len() != 1 {
		t.Error("expected one logged shot")
	}
	if log.Last() == "" {
		t.Error("Last should summarise the shot")
	}
	if metrics.Counter(status.MetricShotsFired).Load() != 1 || metrics.Counter(status.MetricTargetsFound).Load() != 1 {
		t.Errorf("metrics: %s", metrics.Summary())
	}
	t.Logf("last: %s", log.Last())
}

func TestEventLog_Levels(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	log := NewEventLog(zap.New(obs), nil)

	log.HandleEvent(event.Event{Type: event.EventShotDelayed, Payload: &event.AimPayload{Turret: 1}})
	log.HandleEvent(event.Event{Type: event.EventTargetLost, Payload: &event.TargetPayload{
		Turret: 1, Target: 2, Reason: event.LostOutOfRange,
	}})

	if logs.Len() != 1 {
		t.Fatalf("info entries = %d, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["reason"]; got != "out_of_range" {
		t.Errorf("reason = %v", got)
	}
	if log.Last() != "#1 lost #2 (out_of_range)" {
		t.Errorf("last = %q", log.Last())
	}
}
