package targeting

import (
	"math"

	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
)

// Scorer computes selection weights for hittable candidates
// Not safe for concurrent use, cone sampling reuses internal buffers
type Scorer struct {
	world             World
	recentAttackTicks int64

	coneSeen  map[core.Point]struct{}
	coneCells []core.Point
}

// NewScorer creates a scorer granting the recency bonus within recentAttackTicks
func NewScorer(w World, recentAttackTicks int64) *Scorer {
	return &Scorer{
		world:             w,
		recentAttackTicks: recentAttackTicks,
		coneSeen:          make(map[core.Point]struct{}, 64),
	}
}

// Score returns the final weight of t, always >= parameter.ScoreFloor
func (sc *Scorer) Score(s Searcher, verb Verb, t Target, hint Direction) float64 {
	score := sc.BaseScore(s, verb, t)
	score += sc.BlastRadiusOffset(s, verb, t)
	score += sc.ConeOffset(s, verb, t)

	from := s.Position()
	to := t.Position()
	dev := vmath.AngleBetween(hint.X, hint.Y, float64(to.X-from.X), float64(to.Y-from.Y))
	dev = math.Max(dev, parameter.ScoreMinAngleDeviation)

	return math.Max(score*t.Combat().PriorityFactor/dev, parameter.ScoreFloor)
}

// BaseScore covers distance, threat, recency, cover and pawn state terms
func (sc *Scorer) BaseScore(s Searcher, verb Verb, t Target) float64 {
	score := parameter.ScoreBase

	from := s.Position()
	to := t.Position()
	score -= math.Min(math.Sqrt(float64(from.DistSq(to))), parameter.ScoreDistanceCap)

	if t.Combat().AimingAt == s.Entity() {
		score += parameter.ScoreAimingAtSearcher
	}

	if last, tick := s.LastAttack(); last != 0 && last == t.Entity() && sc.world.Tick()-tick <= sc.recentAttackTicks {
		score += parameter.ScoreRecentlyAttacked
	}

	score -= sc.world.CoverBlockChance(to, from) * parameter.ScoreCoverMultiplier

	if pawn, ok := t.Pawn(); ok {
		switch {
		case !pawn.Combatant:
			score -= parameter.ScoreNonCombatantPenalty
		case pawn.Juvenile:
			score -= parameter.ScoreJuvenilePenalty
		}
		if verb.RangedAttackScoreOffset != 0 && pawn.WieldsRanged {
			score += verb.RangedAttackScoreOffset
		}
		if pawn.Downed {
			score -= parameter.ScoreDownedPenalty
		}
	}

	return score
}
