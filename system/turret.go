package system

import (
	"math"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/event"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/registry"
	"github.com/lixenwraith/sentry/targeting"
	"github.com/lixenwraith/sentry/vmath"
	"go.uber.org/zap"
)

const restEpsilon = 1e-6

// WeaponSource resolves weapon definitions by id
type WeaponSource interface {
	Weapon(id string) (registry.WeaponDef, error)
}

// TurretConfig tunes target searches
type TurretConfig struct {
	Seed              uint64
	BiasChance        float64
	RecentAttackTicks int64
	MaxSearchDistance float64
	Filter            targeting.Filter // Extra validator chained after the turret filter, optional
}

// DefaultTurretConfig returns the stock search tuning
func DefaultTurretConfig() TurretConfig {
	return TurretConfig{
		Seed:              parameter.DefaultSeed,
		BiasChance:        parameter.BiasStructureChance,
		RecentAttackTicks: parameter.RecentAttackTicks,
		MaxSearchDistance: parameter.MaxSearchDistance,
	}
}

// TurretSystem acquires targets and rotates turrets toward them with bounded speed
// Shots are events only, damage is resolved elsewhere
type TurretSystem struct {
	world   *engine.World
	cache   *engine.TargetCache
	finder  *targeting.Finder
	weapons WeaponSource
	logger  *zap.Logger
	filter  targeting.Filter
	maxDist float64

	warned  map[string]bool // Unknown weapon ids already reported
	enabled bool
}

// turretContext is the per-tick view of one turret
type turretContext struct {
	entity   core.Entity
	pos      core.Point
	weaponID string
	verb     targeting.Verb
	armed    bool
	pilot    core.Entity
	searcher targeting.Searcher
	flags    targeting.ScanFlags
	filter   targeting.Filter
}

// NewTurretSystem creates the turret system, a nil logger is replaced by a no-op logger
func NewTurretSystem(world *engine.World, weapons WeaponSource, logger *zap.Logger, cfg TurretConfig) *TurretSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxDist := cfg.MaxSearchDistance
	if maxDist <= 0 {
		maxDist = parameter.MaxSearchDistance
	}
	cache := engine.NewTargetCache(world)
	opts := []targeting.Option{targeting.WithBiasChance(cfg.BiasChance)}
	if cfg.RecentAttackTicks > 0 {
		opts = append(opts, targeting.WithRecentAttackTicks(cfg.RecentAttackTicks))
	}

	return &TurretSystem{
		world:   world,
		cache:   cache,
		finder:  targeting.NewFinder(cache, vmath.NewFastRand(cfg.Seed), logger, opts...),
		weapons: weapons,
		logger:  logger,
		filter:  cfg.Filter,
		maxDist: maxDist,
		warned:  make(map[string]bool),
		enabled: true,
	}
}

func (s *TurretSystem) Name() string {
	return "turret"
}

func (s *TurretSystem) Priority() int {
	return parameter.PriorityTurret
}

// SetEnabled pauses or resumes all turrets
func (s *TurretSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether turrets are updated
func (s *TurretSystem) Enabled() bool {
	return s.enabled
}

// Cache returns the target cache the system searches
func (s *TurretSystem) Cache() *engine.TargetCache {
	return s.cache
}

// Finder returns the target finder, for diagnostics
func (s *TurretSystem) Finder() *targeting.Finder {
	return s.finder
}

func (s *TurretSystem) Update() {
	if !s.enabled {
		return
	}

	turretStore := s.world.Components.Turret
	for _, e := range turretStore.GetAllEntities() {
		tc, ok := turretStore.GetComponent(e)
		if !ok {
			continue
		}
		ctx, ok := s.context(e, &tc)
		if !ok {
			continue
		}
		s.updateTurret(ctx, &tc)
		turretStore.SetComponent(e, tc)
	}
}

// === Per-turret context ===

func (s *TurretSystem) context(e core.Entity, tc *component.TurretComponent) (*turretContext, bool) {
	pos, ok := s.world.Positions.GetPosition(e)
	if !ok {
		return nil, false
	}
	if tc.RotationSpeed <= 0 {
		tc.RotationSpeed = parameter.TurretDefaultRotationSpeed
	}

	ctx := &turretContext{entity: e, pos: pos}
	ctx.verb, ctx.weaponID, ctx.armed = s.verbFor(e)

	var faction core.FactionID
	if f, ok := s.world.Components.Faction.GetComponent(e); ok {
		faction = f.ID
	}

	ctx.pilot = s.pilotOf(e)
	if ctx.pilot != 0 {
		if ps, ok := NewPawnSearcher(s.world, ctx.pilot, pos, ctx.verb, ctx.armed); ok {
			ctx.searcher = ps
		} else {
			ctx.pilot = 0
		}
	}
	if ctx.searcher == nil {
		ts, ok := NewTurretSearcher(s.world, e, ctx.verb, ctx.armed)
		if !ok {
			return nil, false
		}
		ctx.searcher = ts
	}

	ctx.flags = ScanFlagsFor(ctx.verb, tc.Mortar)
	ctx.filter = ChainFilters(
		TurretFilter(s.cache, TurretFilterConfig{
			Faction:  faction,
			Mannable: s.world.Components.Mannable.HasEntity(e),
			Overhead: ctx.verb.ProjectileFliesOverhead,
		}),
		s.filter,
	)
	return ctx, true
}

func (s *TurretSystem) verbFor(e core.Entity) (targeting.Verb, string, bool) {
	wc, ok := s.world.Components.Weapon.GetComponent(e)
	if !ok || s.weapons == nil {
		return targeting.Verb{}, "", false
	}
	def, err := s.weapons.Weapon(wc.ID)
	if err != nil {
		if !s.warned[wc.ID] {
			s.warned[wc.ID] = true
			s.logger.Warn("turret weapon unavailable",
				zap.Uint64("turret", uint64(e)),
				zap.String("weapon", wc.ID),
				zap.Error(err))
		}
		return targeting.Verb{}, wc.ID, false
	}
	return def.Verb(), wc.ID, true
}

// pilotOf returns the standing pawn manning the turret, 0 when unmanned
func (s *TurretSystem) pilotOf(e core.Entity) core.Entity {
	m, ok := s.world.Components.Mannable.GetComponent(e)
	if !ok || m.MannedBy == 0 || !s.world.Alive(m.MannedBy) {
		return 0
	}
	if p, ok := s.world.Components.Pawn.GetComponent(m.MannedBy); !ok || p.Downed {
		return 0
	}
	return m.MannedBy
}

// === Update ===

func (s *TurretSystem) updateTurret(ctx *turretContext, tc *component.TurretComponent) {
	if tc.CooldownTicksLeft > 0 {
		tc.CooldownTicksLeft--
	}

	if tc.Target != 0 {
		s.revalidate(ctx, tc)
	}

	if ctx.armed && tc.WarmupTicksLeft == 0 && tc.CooldownTicksLeft == 0 &&
		s.world.Tick()%parameter.TurretRetargetInterval == 0 {
		s.acquire(ctx, tc)
	}

	if tc.Target == 0 {
		s.rest(ctx, tc)
		return
	}
	s.track(ctx, tc)
}

func (s *TurretSystem) request(ctx *turretContext, tc *component.TurretComponent) targeting.Request {
	req := targeting.NewRequest(ctx.searcher, ctx.flags)
	req.DirectionHint = targeting.DirectionFromAngle(tc.Angle)
	req.Filter = ctx.filter
	req.MinDist = ctx.verb.MinRange
	req.MaxDist = math.Min(s.maxDist, ctx.verb.Range)
	return req
}

// revalidate drops the current target when it is gone or no longer passes validation
func (s *TurretSystem) revalidate(ctx *turretContext, tc *component.TurretComponent) {
	t, ok := s.cache.Target(tc.Target)
	if !ok {
		s.loseTarget(ctx, tc, event.LostDestroyed)
		return
	}

	switch r := s.finder.Validate(s.request(ctx, tc), t); r {
	case targeting.Accepted:
	case targeting.RejectMinDistance, targeting.RejectEffectiveMinRange, targeting.RejectMaxDistance:
		s.loseTarget(ctx, tc, event.LostOutOfRange)
	default:
		s.logger.Debug("target no longer valid",
			zap.Uint64("turret", uint64(ctx.entity)),
			zap.Uint64("target", uint64(tc.Target)),
			zap.Stringer("rejection", r))
		s.loseTarget(ctx, tc, event.LostInvalid)
	}
}

func (s *TurretSystem) loseTarget(ctx *turretContext, tc *component.TurretComponent, reason event.LostReason) {
	s.world.PushEvent(event.EventTargetLost, &event.TargetPayload{
		Turret: ctx.entity,
		Target: tc.Target,
		Reason: reason,
	})
	tc.Target = 0
	tc.State = component.TurretIdle
	tc.WarmupTicksLeft = 0
}

// acquire runs a search and queues a shot at the result
func (s *TurretSystem) acquire(ctx *turretContext, tc *component.TurretComponent) {
	t, ok := s.finder.BestAttackTargetFromCurrentPosition(
		ctx.searcher, ctx.flags, targeting.DirectionFromAngle(tc.Angle), ctx.filter,
		0, s.maxDist)
	if !ok {
		return
	}

	if t.Entity() != tc.Target {
		tc.Target = t.Entity()
		tc.State = component.TurretTracking
		s.world.PushEvent(event.EventTargetAcquired, &event.TargetPayload{
			Turret: ctx.entity,
			Target: tc.Target,
		})
		s.logger.Debug("target acquired",
			zap.Uint64("turret", uint64(ctx.entity)),
			zap.Uint64("target", uint64(tc.Target)),
			zap.Uint64("searcher", uint64(ctx.searcher.Entity())),
			zap.Stringer("flags", ctx.flags))
	}

	tc.WarmupTicksLeft = ctx.verb.WarmupTicks
	if tc.WarmupTicksLeft <= 0 {
		tc.WarmupTicksLeft = parameter.TurretDefaultWarmupTicks
	}
}

// track rotates toward the target and counts down the queued shot
func (s *TurretSystem) track(ctx *turretContext, tc *component.TurretComponent) {
	t, ok := s.cache.Target(tc.Target)
	if !ok {
		s.loseTarget(ctx, tc, event.LostDestroyed)
		return
	}

	aim := Aim{Angle: tc.Angle, Speed: tc.RotationSpeed}
	delta := aim.DeltaTo(ctx.pos, t.Position())
	aligned := aim.Aligned(delta)

	// Hold the shot while the barrel is still swinging
	if tc.WarmupTicksLeft == 1 && !aligned {
		tc.WarmupTicksLeft++
		s.world.PushEvent(event.EventShotDelayed, &event.AimPayload{
			Turret: ctx.entity,
			Angle:  tc.Angle,
			Delta:  delta,
		})
	}

	aim = aim.Step(delta)
	tc.Angle = aim.Angle

	if aligned {
		if tc.State != component.TurretReady {
			s.world.PushEvent(event.EventAimAligned, &event.AimPayload{
				Turret: ctx.entity,
				Angle:  tc.Angle,
				Delta:  aim.DeltaTo(ctx.pos, t.Position()),
			})
		}
		tc.State = component.TurretReady
	} else {
		tc.State = component.TurretTracking
	}

	if tc.WarmupTicksLeft == 0 {
		return
	}
	tc.WarmupTicksLeft--
	if tc.WarmupTicksLeft > 0 {
		return
	}

	if tc.State == component.TurretReady && s.finder.CanAttack(ctx.searcher, t) {
		s.fire(ctx, tc, t)
		return
	}
	tc.WarmupTicksLeft = 1
}

func (s *TurretSystem) fire(ctx *turretContext, tc *component.TurretComponent, t targeting.Target) {
	tick := s.world.Tick()
	s.world.PushEvent(event.EventShotFired, &event.ShotPayload{
		Turret: ctx.entity,
		Target: t.Entity(),
		Weapon: ctx.weaponID,
		From:   ctx.pos,
		To:     t.Position(),
	})

	rec := component.AttackRecordComponent{Target: t.Entity(), Tick: tick}
	s.world.Components.AttackRecord.SetComponent(ctx.entity, rec)
	if ctx.pilot != 0 {
		s.world.Components.AttackRecord.SetComponent(ctx.pilot, rec)
	}

	tc.CooldownTicksLeft = ctx.verb.CooldownTicks
	if tc.CooldownTicksLeft <= 0 {
		tc.CooldownTicksLeft = parameter.TurretDefaultCooldownTicks
	}
}

// rest swings an idle turret back to its rest angle once cooldown has elapsed
func (s *TurretSystem) rest(ctx *turretContext, tc *component.TurretComponent) {
	tc.State = component.TurretIdle
	if tc.CooldownTicksLeft > 0 {
		return
	}
	if math.Abs(vmath.ShortestArc(tc.Angle, tc.RestAngle)) < restEpsilon {
		return
	}

	aim, remaining := Aim{Angle: tc.Angle, Speed: tc.RotationSpeed}.StepToAngle(tc.RestAngle)
	tc.Angle = aim.Angle
	if math.Abs(remaining) < restEpsilon {
		tc.Angle = vmath.NormalizeDegrees(tc.RestAngle)
		s.world.PushEvent(event.EventTurretRested, &event.AimPayload{
			Turret: ctx.entity,
			Angle:  tc.Angle,
		})
	}
}
