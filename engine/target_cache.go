package engine

import (
	"math"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/navigation"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/targeting"
	"github.com/lixenwraith/sentry/vmath"
)

// targetView is a per-query snapshot of an attackable entity
type targetView struct {
	entity  core.Entity
	pos     core.Point
	faction core.FactionID
	pawn    component.PawnComponent
	hasPawn bool
	combat  component.CombatTargetComponent
	wick    bool
}

func (v *targetView) Entity() core.Entity                     { return v.entity }
func (v *targetView) Position() core.Point                    { return v.pos }
func (v *targetView) Faction() core.FactionID                 { return v.faction }
func (v *targetView) Pawn() (component.PawnComponent, bool)   { return v.pawn, v.hasPawn }
func (v *targetView) Combat() component.CombatTargetComponent { return v.combat }
func (v *targetView) WickStarted() bool                       { return v.wick }

// TargetCache answers targeting queries against a World
// Not safe for concurrent use, call from within the world update
type TargetCache struct {
	world  *World
	fields *navigation.FieldCache
}

// NewTargetCache creates a target cache over the world
func NewTargetCache(w *World) *TargetCache {
	return &TargetCache{
		world:  w,
		fields: navigation.NewFieldCache(w.Width(), w.Height(), parameter.ReachabilityCacheSize),
	}
}

// Target returns a snapshot of an attackable entity, false when it is gone or not attackable
func (tc *TargetCache) Target(e core.Entity) (targeting.Target, bool) {
	v, ok := tc.view(e)
	if !ok {
		return nil, false
	}
	return v, true
}

func (tc *TargetCache) view(e core.Entity) (*targetView, bool) {
	cs := &tc.world.Components
	combat, ok := cs.CombatTarget.GetComponent(e)
	if !ok {
		return nil, false
	}
	pos, ok := tc.world.Positions.GetPosition(e)
	if !ok {
		return nil, false
	}
	v := &targetView{entity: e, pos: pos, combat: combat}
	if f, ok := cs.Faction.GetComponent(e); ok {
		v.faction = f.ID
	}
	v.pawn, v.hasPawn = cs.Pawn.GetComponent(e)
	if ex, ok := cs.Explosive.GetComponent(e); ok {
		v.wick = ex.WickStarted
	}
	return v, true
}

func (tc *TargetCache) factionOf(e core.Entity) core.FactionID {
	if f, ok := tc.world.Components.Faction.GetComponent(e); ok {
		return f.ID
	}
	return core.FactionNone
}

// PotentialTargetsFor returns targets of factions hostile to the searcher
func (tc *TargetCache) PotentialTargetsFor(s targeting.Searcher) []targeting.Target {
	var out []targeting.Target
	for _, e := range tc.world.Components.CombatTarget.GetAllEntities() {
		if e == s.Entity() {
			continue
		}
		v, ok := tc.view(e)
		if !ok || !tc.world.Factions.Hostile(s.Faction(), v.faction) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// PlayerStructures returns attackable buildings of the player faction
func (tc *TargetCache) PlayerStructures() []targeting.Target {
	player := tc.world.Factions.Player()
	if player == core.FactionNone {
		return nil
	}
	var out []targeting.Target
	for _, e := range tc.world.Components.Building.GetAllEntities() {
		v, ok := tc.view(e)
		if !ok || v.faction != player {
			continue
		}
		out = append(out, v)
	}
	return out
}

// TargetsAt returns attackable entities occupying a cell
func (tc *TargetCache) TargetsAt(p core.Point) []targeting.Target {
	var out []targeting.Target
	for _, e := range tc.world.Positions.GetAllEntityAt(p) {
		if v, ok := tc.view(e); ok {
			out = append(out, v)
		}
	}
	return out
}

// HostileTo reports faction hostility between two entities
func (tc *TargetCache) HostileTo(a, b core.Entity) bool {
	return tc.world.Factions.Hostile(tc.factionOf(a), tc.factionOf(b))
}

// FactionHostile reports hostility between two factions
func (tc *TargetCache) FactionHostile(a, b core.FactionID) bool {
	return tc.world.Factions.Hostile(a, b)
}

// PlayerFaction returns the player faction id
func (tc *TargetCache) PlayerFaction() core.FactionID {
	return tc.world.Factions.Player()
}

// LineOfSight walks the supercover line, the destination cell is never tested
func (tc *TargetCache) LineOfSight(from, to core.Point, skipFirst bool) bool {
	terrain := tc.world.Terrain
	visible := true
	vmath.TraverseCells(from, to, func(p core.Point) bool {
		if p == to {
			return false
		}
		if skipFirst && p == from {
			return true
		}
		if terrain.BlocksSight(p) {
			visible = false
			return false
		}
		return true
	})
	return visible
}

// CanBeSeenOver reports whether sight passes through the cell
func (tc *TargetCache) CanBeSeenOver(p core.Point) bool {
	return tc.world.Terrain.InBounds(p) && !tc.world.Terrain.BlocksSight(p)
}

// Reachable reports whether a walker at from can stand in or next to to
func (tc *TargetCache) Reachable(from, to core.Point) bool {
	terrain := tc.world.Terrain
	if !terrain.InBounds(from) || !terrain.InBounds(to) {
		return false
	}
	field := tc.fields.Field(from, terrain.Generation(), terrain.BlocksMovement)
	return field.Touchable(to)
}

// InBounds reports whether p lies on the map
func (tc *TargetCache) InBounds(p core.Point) bool {
	return tc.world.Terrain.InBounds(p)
}

// ThickRoofAt reports thick roof over p
func (tc *TargetCache) ThickRoofAt(p core.Point) bool {
	return tc.world.Terrain.Cell(p).Roof == RoofThick
}

// BlindingGasAt reports blinding gas at p
func (tc *TargetCache) BlindingGasAt(p core.Point) bool {
	return tc.world.Terrain.InBounds(p) && tc.world.Terrain.Cell(p).Gas
}

// IsBurning reports whether the entity is on fire
func (tc *TargetCache) IsBurning(e core.Entity) bool {
	return tc.world.Components.Burning.HasEntity(e)
}

// CoverBlockChance combines cover of the cells around target facing the shooter
// Cells touching the shooter are ignored, the shooter is firing past them
func (tc *TargetCache) CoverBlockChance(target, shooter core.Point) float64 {
	terrain := tc.world.Terrain
	tx, ty := target.Center()
	sx, sy := shooter.Center()

	pass := 1.0
	for _, off := range core.Adjacent8 {
		c := target.Add(off)
		if c == shooter || c.AdjacentTo(shooter) || !terrain.InBounds(c) {
			continue
		}
		fill := terrain.Cell(c).Fill
		if fill <= 0 {
			continue
		}
		cx, cy := c.Center()
		angle := vmath.AngleBetween(sx-tx, sy-ty, cx-tx, cy-ty)
		pass *= 1 - fill*coverAngleFactor(angle)
	}
	return vmath.Clamp01(1 - pass)
}

// coverAngleFactor scales cover by how far it sits off the shot line
func coverAngleFactor(angle float64) float64 {
	if angle < parameter.CoverFullAngle {
		return 1
	}
	if angle >= parameter.CoverMaxAngle {
		return 0
	}
	bands := math.Floor((angle-parameter.CoverFullAngle)/parameter.CoverBandWidth) + 1
	return math.Max(0, 1-bands*parameter.CoverBandStep)
}

// Tick returns the current simulation tick
func (tc *TargetCache) Tick() int64 {
	return tc.world.Tick()
}

var _ targeting.World = (*TargetCache)(nil)
