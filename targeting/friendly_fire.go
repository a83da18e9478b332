package targeting

import (
	"math"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
)

// classWeight returns the friendly fire weight of hitting e
func classWeight(s Searcher, e Target) float64 {
	if e.Entity() == s.Entity() {
		return parameter.FriendlyFireSelfWeight
	}
	pawn, ok := e.Pawn()
	if !ok {
		return parameter.FriendlyFireNonPawnWeight
	}
	if pawn.Kind == component.PawnAnimal {
		return parameter.FriendlyFireAnimalWeight
	}
	return parameter.FriendlyFireHumanlikeWeight
}

// signedWeight turns a hit weight into a score offset: bonus on hostiles, penalty otherwise
func (sc *Scorer) signedWeight(s Searcher, e Target, weight float64) float64 {
	if sc.world.HostileTo(s.Entity(), e.Entity()) {
		return weight * parameter.FriendlyFireHostileFactor
	}
	return -weight
}

// BlastRadiusOffset scores bystanders inside the weapon's avoid-friendly-fire radius around t
func (sc *Scorer) BlastRadiusOffset(s Searcher, verb Verb, t Target) float64 {
	if verb.AvoidFriendlyFireRadius <= 0 {
		return 0
	}

	center := t.Position()
	n := vmath.NumCellsInRadius(verb.AvoidFriendlyFireRadius)
	offset := 0.0
	for i := 0; i < n; i++ {
		cell := center.Add(vmath.RadialOffset(i))
		if !sc.world.InBounds(cell) {
			continue
		}

		losChecked := false
		for _, e := range sc.world.TargetsAt(cell) {
			if e.Entity() == t.Entity() {
				continue
			}
			// Blast does not carry past walls, one check per cell
			if !losChecked {
				if !sc.world.LineOfSight(center, cell, true) {
					break
				}
				losChecked = true
			}
			offset += sc.signedWeight(s, e, classWeight(s, e))
		}
	}
	return offset
}

// ConeOffset scores bystanders a missed shot could hit on its way past t
// Applies to tool-using non-mechanoid pawns firing direct projectiles
func (sc *Scorer) ConeOffset(s Searcher, verb Verb, t Target) float64 {
	pawn, ok := s.Pawn()
	if !ok || pawn.Intelligence < component.IntelligenceToolUser || pawn.Kind == component.PawnMechanoid {
		return 0
	}
	if !verb.ProjectileShoot || verb.ProjectileFliesOverhead {
		return 0
	}

	source := s.Position()
	dest := t.Position()
	radius := math.Max(AdjustedForcedMiss(verb.ForcedMissRadius, dest.Sub(source)), parameter.ForcedMissMinRadius)

	cells := sc.coneCellsFor(source, dest, radius)

	offset := 0.0
	for _, cell := range cells {
		chance := InterceptChance(source, cell)
		if chance <= 0 {
			continue
		}
		for _, e := range sc.world.TargetsAt(cell) {
			if e.Entity() == t.Entity() {
				continue
			}
			offset += sc.signedWeight(s, e, classWeight(s, e)*chance)
		}
	}
	return offset
}

// coneCellsFor collects distinct visible cells along lines from source to every scatter cell around dest
func (sc *Scorer) coneCellsFor(source, dest core.Point, radius float64) []core.Point {
	clear(sc.coneSeen)
	sc.coneCells = sc.coneCells[:0]

	n := vmath.NumCellsInRadius(radius)
	for i := 0; i < n; i++ {
		scatter := dest.Add(vmath.RadialOffset(i))
		if !sc.world.InBounds(scatter) {
			continue
		}
		vmath.TraverseCells(source, scatter, func(p core.Point) bool {
			if p == source {
				return true
			}
			if !sc.world.CanBeSeenOver(p) {
				return false
			}
			if _, dup := sc.coneSeen[p]; !dup {
				sc.coneSeen[p] = struct{}{}
				sc.coneCells = append(sc.coneCells, p)
			}
			return true
		})
	}
	return sc.coneCells
}
