// Package targeting selects attack targets for turrets and pawns.
//
// A search runs Collector -> Validator -> Scorer -> Selector against a World
// supplied by the host. The package never mutates world state; callers apply
// the returned target themselves.
package targeting

import (
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
)

// Target is a candidate the searcher may attack
type Target interface {
	Entity() core.Entity
	Position() core.Point
	Faction() core.FactionID
	// Pawn returns creature data, false for structures and other non-pawns
	Pawn() (component.PawnComponent, bool)
	Combat() component.CombatTargetComponent
	// WickStarted reports a lit explosive carried or contained by the target
	WickStarted() bool
}

// Searcher is the entity looking for a target
// Turrets and pawns implement it, a manned turret searches through its pilot
type Searcher interface {
	Entity() core.Entity
	Position() core.Point
	Faction() core.FactionID
	// Verb returns the attack currently available, false when unarmed
	Verb() (Verb, bool)
	Pawn() (component.PawnComponent, bool)
	// LastAttack returns the last attacked target and the tick of that attack
	LastAttack() (core.Entity, int64)
}

// World is the read-only view of the host simulation
type World interface {
	// PotentialTargetsFor returns targets of factions hostile to the searcher
	PotentialTargetsFor(s Searcher) []Target
	// PlayerStructures returns structures owned by the player faction
	PlayerStructures() []Target
	// TargetsAt returns all attackable entities occupying a cell
	TargetsAt(p core.Point) []Target

	HostileTo(a, b core.Entity) bool
	FactionHostile(a, b core.FactionID) bool
	PlayerFaction() core.FactionID

	// LineOfSight tests sight from one cell to another, the destination cell is not tested
	LineOfSight(from, to core.Point, skipFirst bool) bool
	CanBeSeenOver(p core.Point) bool
	// Reachable reports whether a walker at from can touch the cell at to
	Reachable(from, to core.Point) bool
	InBounds(p core.Point) bool

	ThickRoofAt(p core.Point) bool
	BlindingGasAt(p core.Point) bool
	IsBurning(e core.Entity) bool

	// CoverBlockChance returns the chance cover around target stops a shot from shooter, in [0, 1]
	CoverBlockChance(target, shooter core.Point) float64

	Tick() int64
}

// Filter is an external validator, returning false rejects the candidate
type Filter func(t Target) bool

// ScoredTarget pairs a hittable candidate with its selection weight
type ScoredTarget struct {
	Target Target
	Score  float64
}
