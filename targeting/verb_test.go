package targeting

import (
	"math"
	"testing"

	"github.com/lixenwraith/sentry/core"
)

func TestAdjustedForcedMiss(t *testing.T) {
	tests := []struct {
		shot core.Point
		want float64
	}{
		{core.Point{X: 2, Y: 2}, 0},   // 8
		{core.Point{X: 3, Y: 0}, 2},   // 9
		{core.Point{X: 4, Y: 2}, 2},   // 20
		{core.Point{X: 5, Y: 0}, 3.2}, // 25
		{core.Point{X: 6, Y: 3}, 3.2}, // 45
		{core.Point{X: 7, Y: 0}, 4},   // 49
		{core.Point{X: 20, Y: 9}, 4},
	}
	for _, tt := range tests {
		if got := AdjustedForcedMiss(4, tt.shot); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AdjustedForcedMiss(4, %v) = %v, want %v", tt.shot, got, tt.want)
		}
	}
}

func TestInterceptChance(t *testing.T) {
	origin := core.Point{X: 0, Y: 0}
	tests := []struct {
		cell core.Point
		want float64
	}{
		{core.Point{X: 5, Y: 0}, 0},
		{core.Point{X: 3, Y: 4}, 0},
		{core.Point{X: 12, Y: 0}, 1},
		{core.Point{X: 20, Y: 20}, 1},
		{core.Point{X: 8, Y: 0}, (64.0 - 25) / (144 - 25)},
	}
	for _, tt := range tests {
		if got := InterceptChance(origin, tt.cell); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("InterceptChance(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestVerb_EffectiveMinRange(t *testing.T) {
	w := newFakeWorld()
	verb := rifleVerb()
	colonist := w.addSearcher(&fakeSearcher{id: 1, pos: core.Point{X: 5, Y: 5}, faction: factionPlayer, verb: verb, pawn: humanlike()})
	turret := w.addSearcher(&fakeSearcher{id: 5, pos: core.Point{X: 5, Y: 5}, faction: factionPlayer, verb: verb})
	raider := w.addTarget(hostileRaider(2, 6, 6))
	wall := w.addTarget(&fakeTarget{id: 3, pos: core.Point{X: 6, Y: 5}, faction: factionRaiders})

	if got := verb.EffectiveMinRange(w, colonist, raider); got != 1.421 {
		t.Errorf("Pawn vs standing hostile = %v, want 1.421", got)
	}
	if got := verb.EffectiveMinRange(w, turret, raider); got != 0 {
		t.Errorf("Turret vs hostile = %v, want 0", got)
	}
	if got := verb.EffectiveMinRange(w, colonist, wall); got != 0 {
		t.Errorf("Pawn vs structure = %v, want 0", got)
	}

	beam := *verb
	beam.ProjectileShoot = false
	if got := beam.EffectiveMinRange(w, colonist, raider); got != 0 {
		t.Errorf("Non-projectile verb = %v, want 0", got)
	}
}

func TestVerb_CanHitTargetFrom(t *testing.T) {
	w := newFakeWorld()
	verb := mortarVerb()
	verb.RequireLineOfSight = false
	s := playerTurret(w, 10, 10, verb)
	tgt := w.addTarget(hostileRaider(2, 10, 30))

	w.walls[core.Point{X: 10, Y: 20}] = true
	if !verb.CanHitTargetFrom(w, s, s.pos, tgt) {
		t.Error("Overhead verb ignores walls")
	}

	rifle := rifleVerb()
	if rifle.CanHitTargetFrom(w, s, s.pos, tgt) {
		t.Error("Direct fire must be blocked by the wall")
	}

	near := w.addTarget(hostileRaider(3, 10, 13))
	if verb.CanHitTargetFrom(w, s, s.pos, near) {
		t.Error("Target inside minimum range must not be hittable")
	}
	far := w.addTarget(hostileRaider(4, 10, 55))
	if verb.CanHitTargetFrom(w, s, s.pos, far) {
		t.Error("Target beyond range must not be hittable")
	}
}
