package vmath

import (
	"math"
	"sort"

	"github.com/lixenwraith/sentry/core"
)

// RadialPatternMaxRadius bounds the precomputed pattern
const RadialPatternMaxRadius = 32

// radialPattern holds cell offsets sorted by distance from origin, origin first
// radialDistSq holds the matching squared distances
var (
	radialPattern []core.Point
	radialDistSq  []int
)

func init() {
	r := RadialPatternMaxRadius
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				radialPattern = append(radialPattern, core.Point{X: x, Y: y})
			}
		}
	}
	sort.SliceStable(radialPattern, func(i, j int) bool {
		return radialPattern[i].LengthSq() < radialPattern[j].LengthSq()
	})
	radialDistSq = make([]int, len(radialPattern))
	for i, p := range radialPattern {
		radialDistSq[i] = p.LengthSq()
	}
}

// NumCellsInRadius returns how many pattern cells lie within radius (inclusive)
func NumCellsInRadius(radius float64) int {
	if radius < 0 {
		return 0
	}
	if radius > RadialPatternMaxRadius {
		radius = RadialPatternMaxRadius
	}
	limit := radius * radius
	// Binary search on sorted squared distances
	return sort.Search(len(radialDistSq), func(i int) bool {
		return float64(radialDistSq[i]) > limit
	})
}

// RadialOffset returns the i-th offset of the radial pattern
func RadialOffset(i int) core.Point {
	return radialPattern[i]
}

// RadialCellsAround returns cells within radius of center ordered by distance
// useCenter=false omits the center cell itself
func RadialCellsAround(center core.Point, radius float64, useCenter bool) []core.Point {
	n := NumCellsInRadius(radius)
	start := 0
	if !useCenter {
		start = 1
	}
	if n <= start {
		return nil
	}
	cells := make([]core.Point, 0, n-start)
	for i := start; i < n; i++ {
		cells = append(cells, center.Add(radialPattern[i]))
	}
	return cells
}

// HorizontalDistance returns the Euclidean distance between two cells
func HorizontalDistance(a, b core.Point) float64 {
	return math.Sqrt(float64(a.DistSq(b)))
}
