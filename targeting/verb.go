package targeting

import (
	"math"

	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
)

// Verb describes the attack a searcher would use
// A zero radius or offset disables the matching scoring term
type Verb struct {
	MinRange float64
	Range    float64

	ForcedMissRadius        float64
	AvoidFriendlyFireRadius float64
	RangedAttackScoreOffset float64

	ProjectileShoot         bool // Launches a projectile, as opposed to beams or melee
	ProjectileFliesOverhead bool
	RequireLineOfSight      bool
	EMPOnly                 bool
	Incendiary              bool

	WarmupTicks   int
	CooldownTicks int
}

// EffectiveMinRange returns the minimum range against a target
// Projectile shots from a pawn cannot hit an adjacent standing hostile pawn
func (v Verb) EffectiveMinRange(w World, s Searcher, t Target) float64 {
	if !v.ProjectileShoot || allowAdjacentShot(w, s, t) {
		return v.MinRange
	}
	return math.Max(v.MinRange, parameter.EffectiveMinRangeAdjacent)
}

func allowAdjacentShot(w World, s Searcher, t Target) bool {
	if _, isPawn := s.Pawn(); !isPawn {
		return true
	}
	pawn, ok := t.Pawn()
	if !ok {
		return true
	}
	return !w.HostileTo(t.Entity(), s.Entity()) || pawn.Downed
}

// CanHitTargetFrom reports whether the verb reaches t from the given cell
func (v Verb) CanHitTargetFrom(w World, s Searcher, from core.Point, t Target) bool {
	distSq := float64(from.DistSq(t.Position()))
	if distSq > v.Range*v.Range {
		return false
	}
	minRange := v.EffectiveMinRange(w, s, t)
	if minRange > 0 && distSq < minRange*minRange {
		return false
	}
	if v.RequireLineOfSight && !w.LineOfSight(from, t.Position(), false) {
		return false
	}
	return true
}

// AdjustedForcedMiss scales the forced miss radius down for short shots
func AdjustedForcedMiss(forcedMiss float64, shot core.Point) float64 {
	lenSq := shot.LengthSq()
	switch {
	case lenSq < parameter.ForcedMissNoneDistSq:
		return 0
	case lenSq < parameter.ForcedMissHalfDistSq:
		return forcedMiss * 0.5
	case lenSq < parameter.ForcedMissMostDistSq:
		return forcedMiss * 0.8
	default:
		return forcedMiss
	}
}

// InterceptChance returns how likely a stray shot from origin is to stop at cell c
// Cells close to the shooter are overflown
func InterceptChance(origin, c core.Point) float64 {
	ox, oy := origin.Center()
	cx, cy := c.Center()
	dx, dy := cx-ox, cy-oy
	d := dx*dx + dy*dy
	if d <= parameter.InterceptNearDistSq {
		return 0
	}
	if d >= parameter.InterceptFarDistSq {
		return 1
	}
	return vmath.InverseLerp(parameter.InterceptNearDistSq, parameter.InterceptFarDistSq, d)
}
