package targeting

import (
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/vmath"
)

// Selector draws one target from a scored set
type Selector struct {
	rng *vmath.FastRand
}

// NewSelector creates a selector over the given random source
func NewSelector(rng *vmath.FastRand) *Selector {
	return &Selector{rng: rng}
}

// Pick draws one candidate with probability proportional to its score
// Equal scores resolve uniformly
func (sel *Selector) Pick(scored []ScoredTarget) (Target, bool) {
	if len(scored) == 0 {
		return nil, false
	}

	total := 0.0
	for _, st := range scored {
		total += st.Score
	}
	if total <= 0 {
		return scored[sel.rng.Intn(len(scored))].Target, true
	}

	roll := sel.rng.Float64() * total
	for _, st := range scored {
		roll -= st.Score
		if roll < 0 {
			return st.Target, true
		}
	}
	// Float accumulation can leave roll at exactly zero
	return scored[len(scored)-1].Target, true
}

// Nearest returns the candidate closest to origin within maxDist
func (sel *Selector) Nearest(origin core.Point, candidates []Target, maxDist float64) (Target, bool) {
	var best Target
	bestDistSq := maxDist * maxDist
	for _, t := range candidates {
		d := float64(origin.DistSq(t.Position()))
		if d <= bestDistSq {
			if best == nil || d < bestDistSq {
				best = t
				bestDistSq = d
			}
		}
	}
	return best, best != nil
}
