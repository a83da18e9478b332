package system

import (
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/targeting"
)

// entitySearcher is a per-tick snapshot shared by both searcher kinds
type entitySearcher struct {
	entity  core.Entity
	pos     core.Point
	faction core.FactionID
	verb    targeting.Verb
	armed   bool

	lastTarget core.Entity
	lastTick   int64
}

func (s *entitySearcher) Entity() core.Entity              { return s.entity }
func (s *entitySearcher) Position() core.Point             { return s.pos }
func (s *entitySearcher) Faction() core.FactionID          { return s.faction }
func (s *entitySearcher) Verb() (targeting.Verb, bool)     { return s.verb, s.armed }
func (s *entitySearcher) LastAttack() (core.Entity, int64) { return s.lastTarget, s.lastTick }

func snapshot(w *engine.World, e core.Entity, at core.Point, verb targeting.Verb, armed bool) entitySearcher {
	s := entitySearcher{entity: e, pos: at, verb: verb, armed: armed}
	if f, ok := w.Components.Faction.GetComponent(e); ok {
		s.faction = f.ID
	}
	if rec, ok := w.Components.AttackRecord.GetComponent(e); ok {
		s.lastTarget = rec.Target
		s.lastTick = rec.Tick
	}
	return s
}

// TurretSearcher searches on behalf of an unmanned turret
type TurretSearcher struct {
	entitySearcher
}

// NewTurretSearcher snapshots a turret at its current position
func NewTurretSearcher(w *engine.World, turret core.Entity, verb targeting.Verb, armed bool) (*TurretSearcher, bool) {
	pos, ok := w.Positions.GetPosition(turret)
	if !ok {
		return nil, false
	}
	return &TurretSearcher{entitySearcher: snapshot(w, turret, pos, verb, armed)}, true
}

// Pawn always reports false, turrets are structures
func (s *TurretSearcher) Pawn() (component.PawnComponent, bool) {
	return component.PawnComponent{}, false
}

// PawnSearcher searches on behalf of a pawn, such as the pilot of a manned turret
// Position is where the verb is fired from, the turret cell when manning
type PawnSearcher struct {
	entitySearcher
	pawn component.PawnComponent
}

// NewPawnSearcher snapshots a pawn firing verb from at
func NewPawnSearcher(w *engine.World, pawn core.Entity, at core.Point, verb targeting.Verb, armed bool) (*PawnSearcher, bool) {
	p, ok := w.Components.Pawn.GetComponent(pawn)
	if !ok {
		return nil, false
	}
	return &PawnSearcher{entitySearcher: snapshot(w, pawn, at, verb, armed), pawn: p}, true
}

// Pawn returns the pawn data
func (s *PawnSearcher) Pawn() (component.PawnComponent, bool) {
	return s.pawn, true
}

var (
	_ targeting.Searcher = (*TurretSearcher)(nil)
	_ targeting.Searcher = (*PawnSearcher)(nil)
)
