package system

import (
	"math"

	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/vmath"
)

// alignEpsilon absorbs trigonometric rounding in bearing deltas
const alignEpsilon = 1e-9

// Aim is a rotation-limited aim state
// Angle is in degrees within [0, 360), Speed is the maximum step per tick
type Aim struct {
	Angle float64
	Speed float64
}

// DeltaTo returns the signed rotation from the current aim to the bearing from -> to
// Positive is clockwise, result in (-180, 180], zero when both cells coincide
func (a Aim) DeltaTo(from, to core.Point) float64 {
	fx, fy := from.Center()
	tx, ty := to.Center()
	ax, ay := vmath.DirectionFromDegrees(a.Angle)
	return vmath.SignedAngle(ax, ay, tx-fx, ty-fy)
}

// Aligned reports whether a remaining delta is within one rotation step
func (a Aim) Aligned(delta float64) bool {
	return math.Abs(delta) <= a.Speed+alignEpsilon
}

// Step rotates by at most Speed along delta and normalises the result
func (a Aim) Step(delta float64) Aim {
	a.Angle = vmath.TrimDegrees(vmath.StepToward(a.Angle, delta, a.Speed))
	return a
}

// StepToAngle rotates toward an absolute angle along the shortest arc
// Returns the new aim and the remaining signed delta
func (a Aim) StepToAngle(target float64) (Aim, float64) {
	next := a.Step(vmath.ShortestArc(a.Angle, target))
	return next, vmath.ShortestArc(next.Angle, target)
}
