package targeting

import (
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/vmath"
)

const (
	factionPlayer  core.FactionID = 1
	factionRaiders core.FactionID = 2
	factionTraders core.FactionID = 3
)

type fakeTarget struct {
	id      core.Entity
	pos     core.Point
	faction core.FactionID
	pawn    *component.PawnComponent
	combat  component.CombatTargetComponent
	wick    bool
}

func (t *fakeTarget) Entity() core.Entity     { return t.id }
func (t *fakeTarget) Position() core.Point    { return t.pos }
func (t *fakeTarget) Faction() core.FactionID { return t.faction }
func (t *fakeTarget) Pawn() (component.PawnComponent, bool) {
	if t.pawn == nil {
		return component.PawnComponent{}, false
	}
	return *t.pawn, true
}
func (t *fakeTarget) Combat() component.CombatTargetComponent { return t.combat }
func (t *fakeTarget) WickStarted() bool                       { return t.wick }

type fakeSearcher struct {
	id         core.Entity
	pos        core.Point
	faction    core.FactionID
	verb       *Verb
	pawn       *component.PawnComponent
	lastTarget core.Entity
	lastTick   int64
}

func (s *fakeSearcher) Entity() core.Entity     { return s.id }
func (s *fakeSearcher) Position() core.Point    { return s.pos }
func (s *fakeSearcher) Faction() core.FactionID { return s.faction }
func (s *fakeSearcher) Verb() (Verb, bool) {
	if s.verb == nil {
		return Verb{}, false
	}
	return *s.verb, true
}
func (s *fakeSearcher) Pawn() (component.PawnComponent, bool) {
	if s.pawn == nil {
		return component.PawnComponent{}, false
	}
	return *s.pawn, true
}
func (s *fakeSearcher) LastAttack() (core.Entity, int64) { return s.lastTarget, s.lastTick }

type fakeWorld struct {
	width, height int
	tick          int64

	targets    []*fakeTarget
	structures []*fakeTarget
	factionOf  map[core.Entity]core.FactionID
	hostile    map[[2]core.FactionID]bool

	walls       map[core.Point]bool
	thickRoof   map[core.Point]bool
	gas         map[core.Point]bool
	unreachable map[core.Point]bool
	burning     map[core.Entity]bool
	cover       map[core.Point]float64
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{
		width:       64,
		height:      64,
		factionOf:   make(map[core.Entity]core.FactionID),
		hostile:     make(map[[2]core.FactionID]bool),
		walls:       make(map[core.Point]bool),
		thickRoof:   make(map[core.Point]bool),
		gas:         make(map[core.Point]bool),
		unreachable: make(map[core.Point]bool),
		burning:     make(map[core.Entity]bool),
		cover:       make(map[core.Point]float64),
	}
	w.setHostile(factionPlayer, factionRaiders)
	return w
}

func (w *fakeWorld) setHostile(a, b core.FactionID) {
	w.hostile[[2]core.FactionID{a, b}] = true
	w.hostile[[2]core.FactionID{b, a}] = true
}

func (w *fakeWorld) addSearcher(s *fakeSearcher) *fakeSearcher {
	w.factionOf[s.id] = s.faction
	return s
}

func (w *fakeWorld) addTarget(t *fakeTarget) *fakeTarget {
	w.targets = append(w.targets, t)
	w.factionOf[t.id] = t.faction
	if t.combat.PriorityFactor == 0 {
		t.combat.PriorityFactor = 1
	}
	return t
}

func (w *fakeWorld) addStructure(t *fakeTarget) *fakeTarget {
	w.addTarget(t)
	w.structures = append(w.structures, t)
	return t
}

func (w *fakeWorld) PotentialTargetsFor(s Searcher) []Target {
	var out []Target
	for _, t := range w.targets {
		if w.FactionHostile(s.Faction(), t.faction) {
			out = append(out, t)
		}
	}
	return out
}

func (w *fakeWorld) PlayerStructures() []Target {
	out := make([]Target, 0, len(w.structures))
	for _, t := range w.structures {
		out = append(out, t)
	}
	return out
}

func (w *fakeWorld) TargetsAt(p core.Point) []Target {
	var out []Target
	for _, t := range w.targets {
		if t.pos == p {
			out = append(out, t)
		}
	}
	return out
}

func (w *fakeWorld) HostileTo(a, b core.Entity) bool {
	return w.FactionHostile(w.factionOf[a], w.factionOf[b])
}

func (w *fakeWorld) FactionHostile(a, b core.FactionID) bool {
	return w.hostile[[2]core.FactionID{a, b}]
}

func (w *fakeWorld) PlayerFaction() core.FactionID { return factionPlayer }

func (w *fakeWorld) LineOfSight(from, to core.Point, skipFirst bool) bool {
	visible := true
	vmath.TraverseCells(from, to, func(p core.Point) bool {
		if p == to {
			return false
		}
		if p == from && skipFirst {
			return true
		}
		if w.walls[p] {
			visible = false
			return false
		}
		return true
	})
	return visible
}

func (w *fakeWorld) CanBeSeenOver(p core.Point) bool { return w.InBounds(p) && !w.walls[p] }
func (w *fakeWorld) Reachable(from, to core.Point) bool {
	return !w.unreachable[to]
}
func (w *fakeWorld) InBounds(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.width && p.Y < w.height
}
func (w *fakeWorld) ThickRoofAt(p core.Point) bool            { return w.thickRoof[p] }
func (w *fakeWorld) BlindingGasAt(p core.Point) bool          { return w.gas[p] }
func (w *fakeWorld) IsBurning(e core.Entity) bool             { return w.burning[e] }
func (w *fakeWorld) CoverBlockChance(t, _ core.Point) float64 { return w.cover[t] }
func (w *fakeWorld) Tick() int64                              { return w.tick }

// Helpers

func rifleVerb() *Verb {
	return &Verb{
		Range:              25,
		ProjectileShoot:    true,
		RequireLineOfSight: true,
		ForcedMissRadius:   0,
	}
}

func mortarVerb() *Verb {
	return &Verb{
		MinRange:                5,
		Range:                   40,
		ProjectileShoot:         true,
		ProjectileFliesOverhead: true,
		ForcedMissRadius:        3,
		AvoidFriendlyFireRadius: 3,
	}
}

func humanlike() *component.PawnComponent {
	return &component.PawnComponent{
		Kind:         component.PawnHumanlike,
		Intelligence: component.IntelligenceHumanlike,
		Combatant:    true,
		Flesh:        true,
	}
}

func animal() *component.PawnComponent {
	return &component.PawnComponent{
		Kind:         component.PawnAnimal,
		Intelligence: component.IntelligenceAnimal,
		Combatant:    true,
		Flesh:        true,
	}
}

func hostileRaider(id core.Entity, x, y int) *fakeTarget {
	return &fakeTarget{
		id:      id,
		pos:     core.Point{X: x, Y: y},
		faction: factionRaiders,
		pawn:    humanlike(),
		combat:  component.CombatTargetComponent{AutoTargetable: true, ActiveThreat: true, PriorityFactor: 1},
	}
}

func playerTurret(w *fakeWorld, x, y int, verb *Verb) *fakeSearcher {
	return w.addSearcher(&fakeSearcher{
		id:      1,
		pos:     core.Point{X: x, Y: y},
		faction: factionPlayer,
		verb:    verb,
	})
}
