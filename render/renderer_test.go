package render

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/status"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newWorld(t *testing.T) (*engine.World, core.Entity, core.Entity) {
	t.Helper()
	w := engine.NewWorld(10, 6)
	w.Factions.Define(1, "colony", true)
	w.Factions.Define(2, "raiders", false)
	w.Factions.SetHostile(1, 2, true)
	w.Terrain.SetWall(core.Point{X: 6, Y: 2}, true)
	w.Terrain.SetCover(core.Point{X: 4, Y: 4}, 0.5)

	pawn := w.CreateEntity()
	if err := w.Positions.SetPosition(pawn, core.Point{X: 2, Y: 5}); err != nil {
		t.Fatal(err)
	}
	w.Components.Faction.SetComponent(pawn, component.FactionComponent{ID: 2})
	w.Components.Pawn.SetComponent(pawn, component.PawnComponent{Kind: component.PawnHumanlike})

	turret := w.CreateEntity()
	if err := w.Positions.SetPosition(turret, core.Point{X: 2, Y: 2}); err != nil {
		t.Fatal(err)
	}
	w.Components.Faction.SetComponent(turret, component.FactionComponent{ID: 1})
	w.Components.Turret.SetComponent(turret, component.TurretComponent{
		Angle:  90,
		Target: pawn,
		State:  component.TurretTracking,
	})
	return w, turret, pawn
}

func TestTurretGlyph(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '↓'},
		{22, '↓'},
		{23, '↘'},
		{90, '→'},
		{180, '↑'},
		{270, '←'},
		{359, '↓'},
		{-45, '↙'},
	}
	for _, tt := range tests {
		if got := TurretGlyph(tt.angle); got != tt.want {
			t.Errorf("TurretGlyph(%v) = %c, want %c", tt.angle, got, tt.want)
		}
	}
}

func TestRenderFrame_MapAndRay(t *testing.T) {
	screen := newScreen(t, 40, 8)
	w, _, _ := newWorld(t)

	NewRenderer(screen, w).RenderFrame(Status{Scenario: "yard"})

	cells := []struct {
		x, y int
		want rune
		fg   tcell.Color
	}{
		{2, 2, '→', RgbPlayer},
		{3, 2, '·', RgbAimTracking},
		{5, 2, '·', RgbAimTracking},
		{6, 2, '#', RgbWall},
		{7, 2, '.', RgbFloor}, // Ray stops at the wall
		{4, 4, '▁', RgbCover},
		{0, 0, '.', RgbFloor},
	}
	for _, c := range cells {
		mainc, _, style, _ := screen.GetContent(c.x, c.y)
		fg, _, _ := style.Decompose()
		if mainc != c.want {
			t.Errorf("(%d,%d) = %c, want %c", c.x, c.y, mainc, c.want)
		}
		if fg != c.fg {
			t.Errorf("(%d,%d) fg = %v, want %v", c.x, c.y, fg, c.fg)
		}
	}
}

func TestRenderFrame_TargetHighlight(t *testing.T) {
	screen := newScreen(t, 40, 8)
	w, turret, _ := newWorld(t)

	r := NewRenderer(screen, w)
	r.RenderFrame(Status{})

	mainc, _, style, _ := screen.GetContent(2, 5)
	fg, _, attrs := style.Decompose()
	if mainc != '@' || fg != RgbHostile {
		t.Errorf("hostile pawn drawn as %c %v", mainc, fg)
	}
	if attrs&tcell.AttrReverse == 0 {
		t.Error("targeted pawn should be reversed")
	}

	w.Components.Turret.MutateComponent(turret, func(tc *component.TurretComponent) {
		tc.Target = 0
		tc.State = component.TurretIdle
	})
	r.RenderFrame(Status{})
	_, _, style, _ = screen.GetContent(2, 5)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse != 0 {
		t.Error("untargeted pawn should not be reversed")
	}
	_, _, style, _ = screen.GetContent(3, 2)
	if fg, _, _ := style.Decompose(); fg != RgbAimIdle {
		t.Errorf("idle ray fg = %v, want %v", fg, RgbAimIdle)
	}
}

func TestRenderFrame_StatusBar(t *testing.T) {
	screen := newScreen(t, 60, 8)
	w, turret, pawn := newWorld(t)

	NewRenderer(screen, w).RenderFrame(Status{Scenario: "yard", Paused: true, Message: "hello"})

	var sb strings.Builder
	for x := 0; x < 60; x++ {
		mainc, _, _, _ := screen.GetContent(x, 7)
		sb.WriteRune(mainc)
	}
	line := sb.String()
	t.Logf("status: %q", line)

	for _, want := range []string{"PAUSED", "yard", "tick 0", "tracking", "hello"} {
		if !strings.Contains(line, want) {
			t.Errorf("status bar missing %q", want)
		}
	}
	if !strings.Contains(line, ">#"+strconv.FormatUint(uint64(pawn), 10)) || !strings.Contains(line, "#"+strconv.FormatUint(uint64(turret), 10)) {
		t.Error("status bar should name turret and target")
	}

	_, _, style, _ := screen.GetContent(1, 7)
	if _, bg, _ := style.Decompose(); bg != RgbPausedBg {
		t.Errorf("paused marker bg = %v", bg)
	}
}

func TestRenderer_Scroll(t *testing.T) {
	screen := newScreen(t, 6, 4) // 3 map rows above the status bar
	w, _, _ := newWorld(t)

	r := NewRenderer(screen, w)
	if got := r.Viewport(); got != (core.Area{X: 0, Y: 0, Width: 6, Height: 3}) {
		t.Fatalf("initial viewport %+v", got)
	}

	r.Scroll(100, 100)
	if got := r.Viewport(); got != (core.Area{X: 4, Y: 3, Width: 6, Height: 3}) {
		t.Errorf("clamped viewport %+v", got)
	}

	r.Scroll(-3, -2)
	r.RenderFrame(Status{})
	// Offset (1,1): the turret at (2,2) draws at screen (1,1)
	if mainc, _, _, _ := screen.GetContent(1, 1); mainc != '→' {
		t.Errorf("scrolled turret drawn as %c", mainc)
	}

	r.Scroll(-10, -10)
	if got := r.Viewport(); got.X != 0 || got.Y != 0 {
		t.Errorf("viewport not clamped at origin: %+v", got)
	}
}

func TestRenderFrame_Metrics(t *testing.T) {
	screen := newScreen(t, 80, 8)
	w, _, _ := newWorld(t)

	metrics := status.NewRegistry()
	metrics.Counter(status.MetricShotsFired).Add(2)
	metrics.Text(status.MetricLastEvent).Store("#2 fired rifle at #1")

	NewRenderer(screen, w).RenderFrame(Status{Scenario: "yard", Metrics: metrics})

	var sb strings.Builder
	for x := 0; x < 80; x++ {
		mainc, _, _, _ := screen.GetContent(x, 7)
		sb.WriteRune(mainc)
	}
	line := sb.String()
	for _, want := range []string{"shots=2", "#2 fired rifle at #1"} {
		if !strings.Contains(line, want) {
			t.Errorf("status bar %q missing %q", line, want)
		}
	}
}
