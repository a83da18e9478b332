package engine

import (
	"testing"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/event"
)

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s *recordingSystem) Update()       { *s.log = append(*s.log, s.name) }
func (s *recordingSystem) Priority() int { return s.priority }

func TestStore_SetGetRemove(t *testing.T) {
	s := NewStore[component.FactionComponent]()
	s.SetComponent(1, component.FactionComponent{ID: 2})
	s.SetComponent(2, component.FactionComponent{ID: 3})
	s.SetComponent(3, component.FactionComponent{ID: 4})

	if got, ok := s.GetComponent(2); !ok || got.ID != 3 {
		t.Fatalf("GetComponent(2) = %v, %v", got, ok)
	}

	s.RemoveEntity(2)
	if s.HasEntity(2) {
		t.Error("entity 2 still present after removal")
	}

	all := s.GetAllEntities()
	if len(all) != 2 || all[0] != 1 || all[1] != 3 {
		t.Errorf("expected insertion order [1 3], got %v", all)
	}
}

func TestStore_Mutate(t *testing.T) {
	s := NewStore[component.TurretComponent]()
	s.SetComponent(7, component.TurretComponent{Angle: 10})

	if !s.MutateComponent(7, func(tc *component.TurretComponent) { tc.Angle = 20 }) {
		t.Fatal("mutate on existing entity returned false")
	}
	if got, _ := s.GetComponent(7); got.Angle != 20 {
		t.Errorf("expected angle 20, got %v", got.Angle)
	}
	if s.MutateComponent(8, func(*component.TurretComponent) {}) {
		t.Error("mutate on missing entity returned true")
	}
}

func TestPositionStore_Bounds(t *testing.T) {
	ps := NewPositionStore(10, 10)

	if err := ps.SetPosition(1, core.Point{X: 3, Y: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ps.SetPosition(1, core.Point{X: 10, Y: 4}); err == nil {
		t.Error("expected out of bounds error")
	}
	if p, _ := ps.GetPosition(1); p != (core.Point{X: 3, Y: 4}) {
		t.Errorf("failed move changed position to %v", p)
	}

	if err := ps.SetPosition(1, core.Point{X: 5, Y: 5}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if ps.HasAnyAt(core.Point{X: 3, Y: 4}) {
		t.Error("old cell still occupied after move")
	}
	if got := ps.GetAllEntityAt(core.Point{X: 5, Y: 5}); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1] at new cell, got %v", got)
	}
}

func TestPositionStore_CellCapacity(t *testing.T) {
	ps := NewPositionStore(4, 4)
	p := core.Point{X: 1, Y: 1}

	for i := 1; i <= MaxEntitiesPerCell; i++ {
		if err := ps.SetPosition(core.Entity(i), p); err != nil {
			t.Fatalf("entity %d rejected: %v", i, err)
		}
	}
	if err := ps.SetPosition(core.Entity(MaxEntitiesPerCell+1), p); err == nil {
		t.Error("expected full cell error")
	}
}

func TestTerrain_GenerationOnlyOnMovementChange(t *testing.T) {
	tr := NewTerrain(8, 8)
	p := core.Point{X: 2, Y: 2}

	tr.SetCover(p, 0.5)
	tr.SetRoof(p, RoofThick)
	tr.SetGas(p, true)
	if tr.Generation() != 0 {
		t.Errorf("non-movement changes bumped generation to %d", tr.Generation())
	}

	tr.SetWall(p, true)
	if tr.Generation() != 1 {
		t.Errorf("expected generation 1 after wall, got %d", tr.Generation())
	}
	if c := tr.Cell(p); c.Fill != 1 || !c.Wall {
		t.Errorf("wall cell = %+v", c)
	}
	if !tr.BlocksSight(core.Point{X: -1, Y: 0}) {
		t.Error("out of bounds should block sight")
	}
}

func TestFactionTable_Hostility(t *testing.T) {
	ft := NewFactionTable()
	ft.Define(1, "colony", true)
	ft.Define(2, "raiders", false)
	ft.Define(3, "traders", false)
	ft.SetHostile(1, 2, true)

	tests := []struct {
		a, b core.FactionID
		want bool
	}{
		{1, 2, true},
		{2, 1, true},
		{1, 3, false},
		{2, 2, false},
		{core.FactionNone, 2, false},
	}
	for _, tt := range tests {
		if got := ft.Hostile(tt.a, tt.b); got != tt.want {
			t.Errorf("Hostile(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if ft.Player() != 1 {
		t.Errorf("expected player faction 1, got %d", ft.Player())
	}
	if id, ok := ft.Lookup("raiders"); !ok || id != 2 {
		t.Errorf("Lookup(raiders) = %d, %v", id, ok)
	}
}

func TestWorld_SystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld(8, 8)
	var log []string
	w.AddSystem(&recordingSystem{name: "render", priority: 100, log: &log})
	w.AddSystem(&recordingSystem{name: "turret", priority: 10, log: &log})
	w.AddSystem(&recordingSystem{name: "cleanup", priority: 50, log: &log})

	w.Update()

	want := []string{"turret", "cleanup", "render"}
	if len(log) != len(want) {
		t.Fatalf("expected %d updates, got %v", len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, log[i], want[i])
		}
	}
	if w.Tick() != 1 {
		t.Errorf("expected tick 1, got %d", w.Tick())
	}
}

func TestWorld_DestroyEntityClearsAllStores(t *testing.T) {
	w := NewWorld(8, 8)
	e := w.CreateEntity()
	_ = w.Positions.SetPosition(e, core.Point{X: 1, Y: 1})
	w.Components.Faction.SetComponent(e, component.FactionComponent{ID: 2})
	w.Components.CombatTarget.SetComponent(e, component.CombatTargetComponent{PriorityFactor: 1})
	w.Components.Burning.SetComponent(e, component.BurningComponent{})

	w.DestroyEntity(e)

	if w.Alive(e) {
		t.Error("entity still alive")
	}
	if w.Components.Faction.HasEntity(e) || w.Components.CombatTarget.HasEntity(e) || w.Components.Burning.HasEntity(e) {
		t.Error("components survived destroy")
	}
	if w.Positions.HasAnyAt(core.Point{X: 1, Y: 1}) {
		t.Error("grid cell still occupied")
	}
}

func TestWorld_PushEventStampsTick(t *testing.T) {
	w := NewWorld(4, 4)
	w.Update()
	w.Update()
	w.PushEvent(event.EventShotFired, &event.ShotPayload{Turret: 1, Target: 2})

	events := w.Events().Consume()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Tick != 2 || events[0].Type != event.EventShotFired {
		t.Errorf("unexpected event %+v", events[0])
	}
}
