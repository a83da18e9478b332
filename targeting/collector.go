package targeting

import (
	"github.com/lixenwraith/sentry/vmath"
)

// Collector gathers raw candidates for a searcher
type Collector struct {
	world      World
	rng        *vmath.FastRand
	biasChance float64

	structures []Target
}

// NewCollector creates a collector biasing overhead weapons toward player structures with the given chance
func NewCollector(w World, rng *vmath.FastRand, biasChance float64) *Collector {
	return &Collector{world: w, rng: rng, biasChance: biasChance}
}

// Collect appends hostile candidates for s to dst
// When forced is non-nil the search is over: an overhead weapon picked a player structure
func (c *Collector) Collect(s Searcher, flags ScanFlags, verb Verb, dst []Target) (candidates []Target, forced Target) {
	if verb.ProjectileFliesOverhead &&
		c.rng.Chance(c.biasChance) &&
		c.world.FactionHostile(s.Faction(), c.world.PlayerFaction()) {
		if t := c.randomStructureInRange(s, verb); t != nil {
			return dst, t
		}
	}

	for _, t := range c.world.PotentialTargetsFor(s) {
		if c.ignoreNonCombatant(s, t, flags) {
			continue
		}
		dst = append(dst, t)
	}
	return dst, nil
}

// randomStructureInRange picks uniformly among player structures outside the dead zone and within range
func (c *Collector) randomStructureInRange(s Searcher, verb Verb) Target {
	c.structures = c.structures[:0]
	origin := s.Position()
	rangeSq := verb.Range * verb.Range
	for _, t := range c.world.PlayerStructures() {
		minRange := verb.EffectiveMinRange(c.world, s, t)
		distSq := float64(origin.DistSq(t.Position()))
		if distSq > minRange*minRange && distSq < rangeSq {
			c.structures = append(c.structures, t)
		}
	}
	if len(c.structures) == 0 {
		return nil
	}
	return c.structures[c.rng.Intn(len(c.structures))]
}

// ignoreNonCombatant drops non-combatant pawns unless they are in plain sight and not explicitly ignored
func (c *Collector) ignoreNonCombatant(s Searcher, t Target, flags ScanFlags) bool {
	pawn, ok := t.Pawn()
	if !ok || pawn.Combatant {
		return false
	}
	if flags.IgnoreNonCombatants {
		return true
	}
	return !c.world.LineOfSight(s.Position(), t.Position(), false)
}
