package targeting

import (
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
)

// Direction is a planar aim vector, the zero value means no preference
type Direction struct {
	X, Y float64
}

// DirectionFromAngle returns the unit aim vector for an angle in degrees
func DirectionFromAngle(deg float64) Direction {
	x, y := vmath.DirectionFromDegrees(deg)
	return Direction{X: x, Y: y}
}

// Request is the full parameter set of a target search
type Request struct {
	Searcher      Searcher
	Flags         ScanFlags
	DirectionHint Direction
	Filter        Filter

	MinDist float64
	MaxDist float64

	// Locus constrains candidates to within MaxTravelRadiusFromLocus (+ weapon range) of a point
	Locus                    *core.Point
	MaxTravelRadiusFromLocus float64

	AllowCloserThanEffectiveMinRange bool
}

// NewRequest returns a request with unbounded distance and travel radius
func NewRequest(s Searcher, flags ScanFlags) Request {
	return Request{
		Searcher:                 s,
		Flags:                    flags,
		MaxDist:                  parameter.MaxSearchDistance,
		MaxTravelRadiusFromLocus: parameter.MaxSearchDistance,
	}
}
