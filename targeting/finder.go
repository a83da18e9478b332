package targeting

import (
	"math"

	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/vmath"
	"go.uber.org/zap"
)

// Finder runs target searches against one world
// Scratch buffers are reused between calls, a Finder must not be shared across goroutines
type Finder struct {
	world  World
	logger *zap.Logger

	collector *Collector
	scorer    *Scorer
	selector  *Selector

	candidates []Target
	validated  []Target
	scored     []ScoredTarget
}

// Option configures a Finder
type Option func(*Finder)

// WithBiasChance sets the chance overhead weapons try a player structure first
func WithBiasChance(p float64) Option {
	return func(f *Finder) { f.collector.biasChance = p }
}

// WithRecentAttackTicks sets the recency bonus window
func WithRecentAttackTicks(ticks int64) Option {
	return func(f *Finder) { f.scorer.recentAttackTicks = ticks }
}

// NewFinder creates a finder, a nil logger is replaced by a no-op logger
func NewFinder(w World, rng *vmath.FastRand, logger *zap.Logger, opts ...Option) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Finder{
		world:     w,
		logger:    logger,
		collector: NewCollector(w, rng, parameter.BiasStructureChance),
		scorer:    NewScorer(w, parameter.RecentAttackTicks),
		selector:  NewSelector(rng),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BestAttackTargetFromCurrentPosition searches with distances clamped to the searcher's weapon range
func (f *Finder) BestAttackTargetFromCurrentPosition(s Searcher, flags ScanFlags, hint Direction, filter Filter, minDist, maxDist float64) (Target, bool) {
	verb, ok := s.Verb()
	if !ok {
		f.logger.Warn("searcher has no attack verb", zap.Uint64("searcher", uint64(s.Entity())))
		return nil, false
	}

	req := NewRequest(s, flags)
	req.DirectionHint = hint
	req.Filter = filter
	req.MinDist = math.Max(minDist, verb.MinRange)
	req.MaxDist = math.Min(maxDist, verb.Range)
	return f.BestAttackTarget(req)
}

// BestAttackTarget runs the full collect, validate, score and select pipeline
func (f *Finder) BestAttackTarget(req Request) (Target, bool) {
	s := req.Searcher
	verb, ok := s.Verb()
	if !ok {
		f.logger.Warn("searcher has no attack verb", zap.Uint64("searcher", uint64(s.Entity())))
		return nil, false
	}

	var forced Target
	f.candidates, forced = f.collector.Collect(s, req.Flags, verb, f.candidates[:0])
	if forced != nil {
		f.logger.Debug("overhead weapon biased to player structure",
			zap.Uint64("searcher", uint64(s.Entity())),
			zap.Uint64("target", uint64(forced.Entity())))
		return forced, true
	}

	validator := NewValidator(f.world, req, verb)
	f.validated = f.validated[:0]
	for _, t := range f.candidates {
		if validator.Valid(t) {
			f.validated = append(f.validated, t)
		}
	}

	f.scoreHittable(s, verb, req.DirectionHint)
	if len(f.scored) > 0 {
		t, ok := f.selector.Pick(f.scored)
		if ok {
			f.logger.Debug("target selected",
				zap.Uint64("searcher", uint64(s.Entity())),
				zap.Uint64("target", uint64(t.Entity())),
				zap.Int("hittable", len(f.scored)),
				zap.Stringer("flags", req.Flags))
		}
		return t, ok
	}

	// Nothing hittable from here: fall back to the closest valid candidate
	fallback := f.validated
	if req.Flags.NeedReachableIfCantHitFromMyPos && !req.Flags.NeedReachable {
		fallback = fallback[:0]
		for _, t := range f.validated {
			if verb.CanHitTargetFrom(f.world, s, s.Position(), t) {
				fallback = append(fallback, t)
			}
		}
		f.validated = fallback
	}
	return f.selector.Nearest(s.Position(), fallback, req.MaxDist)
}

// ScoreTargets returns the scored hittable subset of candidates for s
// The returned slice is owned by the Finder and valid until the next call
func (f *Finder) ScoreTargets(s Searcher, candidates []Target, hint Direction) []ScoredTarget {
	verb, ok := s.Verb()
	if !ok {
		return nil
	}
	f.validated = append(f.validated[:0], candidates...)
	f.scoreHittable(s, verb, hint)
	return f.scored
}

func (f *Finder) scoreHittable(s Searcher, verb Verb, hint Direction) {
	f.scored = f.scored[:0]
	from := s.Position()
	for _, t := range f.validated {
		if !verb.CanHitTargetFrom(f.world, s, from, t) {
			continue
		}
		score := f.scorer.Score(s, verb, t, hint)
		f.scored = append(f.scored, ScoredTarget{Target: t, Score: score})
		if ce := f.logger.Check(zap.DebugLevel, "target scored"); ce != nil {
			ce.Write(zap.Uint64("target", uint64(t.Entity())), zap.Float64("score", score))
		}
	}
}

// CanAttack reports whether s can hit t from its current position right now
func (f *Finder) CanAttack(s Searcher, t Target) bool {
	verb, ok := s.Verb()
	if !ok {
		return false
	}
	return verb.CanHitTargetFrom(f.world, s, s.Position(), t)
}

// Validate re-checks a previously selected target under a request
func (f *Finder) Validate(req Request, t Target) Rejection {
	verb, ok := req.Searcher.Verb()
	if !ok {
		return RejectNoVerb
	}
	return NewValidator(f.world, req, verb).Check(t)
}
