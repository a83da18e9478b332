package system

import (
	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/targeting"
)

// TurretFilterConfig describes the turret a filter is built for
type TurretFilterConfig struct {
	Faction  core.FactionID
	Mannable bool // Turret can take a pilot, whether or not one is seated
	Overhead bool // Weapon projectiles fly overhead
}

// TurretFilter returns the turret-side validator
//   - player turrets never shoot prisoners
//   - overhead weapons skip targets under thick roof
//   - turrets that cannot be manned skip machines not hostile to them
//   - mannable turrets skip player animals
func TurretFilter(w targeting.World, cfg TurretFilterConfig) targeting.Filter {
	player := w.PlayerFaction()
	return func(t targeting.Target) bool {
		pawn, isPawn := t.Pawn()

		if isPawn && pawn.Prisoner && cfg.Faction == player {
			return false
		}
		if cfg.Overhead && w.ThickRoofAt(t.Position()) {
			return false
		}
		if !isPawn {
			return true
		}
		if !cfg.Mannable {
			return pawn.Kind != component.PawnMechanoid || w.FactionHostile(cfg.Faction, t.Faction())
		}
		return pawn.Kind != component.PawnAnimal || t.Faction() != player
	}
}

// ChainFilters returns a filter passing only candidates every non-nil filter accepts
func ChainFilters(filters ...targeting.Filter) targeting.Filter {
	active := make([]targeting.Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(t targeting.Target) bool {
		for _, f := range active {
			if !f(t) {
				return false
			}
		}
		return true
	}
}

// ScanFlagsFor composes the search flags for a turret weapon
func ScanFlagsFor(verb targeting.Verb, mortar bool) targeting.ScanFlags {
	flags := targeting.ScanFlags{
		NeedThreat:         true,
		NeedAutoTargetable: true,
	}
	if !verb.ProjectileFliesOverhead {
		flags = flags.WithLOSToAll()
		flags.LOSBlockableByGas = true
	}
	if verb.Incendiary {
		flags.NeedNonBurning = true
	}
	if mortar {
		flags.NeedNotUnderThickRoof = true
	}
	return flags
}
