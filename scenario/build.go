package scenario

import (
	"fmt"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/registry"
	"github.com/lixenwraith/sentry/vmath"
)

// TurretDefs resolves turret definitions by id
type TurretDefs interface {
	Turret(id string) (registry.TurretDef, error)
}

// Placement maps scenario names to the created entities
type Placement struct {
	Names   map[string]core.Entity
	Turrets []core.Entity // In file order
}

// Build creates a world from the scenario
func (s *Scenario) Build(defs TurretDefs) (*engine.World, *Placement, error) {
	w := engine.NewWorld(s.Width(), s.Height())
	placement, err := s.Populate(w, defs)
	if err != nil {
		return nil, nil, err
	}
	return w, placement, nil
}

// Populate loads terrain, factions and entities into an existing world
// The world must be at least as large as the map
func (s *Scenario) Populate(w *engine.World, defs TurretDefs) (*Placement, error) {
	if w.Width() < s.Width() || w.Height() < s.Height() {
		return nil, fmt.Errorf("%w: map %dx%d exceeds world %dx%d",
			ErrInvalidScenario, s.Width(), s.Height(), w.Width(), w.Height())
	}

	s.loadTerrain(w.Terrain)

	for _, f := range s.Factions {
		w.Factions.Define(core.FactionID(f.ID), f.Name, f.Player)
	}
	for _, pair := range s.Hostile {
		a, _ := w.Factions.Lookup(pair[0])
		b, _ := w.Factions.Lookup(pair[1])
		w.Factions.SetHostile(a, b, true)
	}

	p := &Placement{Names: make(map[string]core.Entity)}
	for i, def := range s.Entities {
		e, err := s.spawn(w, defs, def)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, def.Name, err)
		}
		if def.Name != "" {
			p.Names[def.Name] = e
		}
		if def.Kind == "turret" {
			p.Turrets = append(p.Turrets, e)
		}
	}

	// Manning is resolved after all entities exist
	for _, def := range s.Entities {
		if def.MannedBy == "" {
			continue
		}
		turret := p.Names[def.Name]
		pilot := p.Names[def.MannedBy]
		if !w.Components.Mannable.HasEntity(turret) {
			return nil, fmt.Errorf("%w: %q is not mannable", ErrInvalidScenario, def.Name)
		}
		if !w.Components.Pawn.HasEntity(pilot) {
			return nil, fmt.Errorf("%w: %q cannot man a turret", ErrInvalidScenario, def.MannedBy)
		}
		w.Components.Mannable.SetComponent(turret, component.MannableComponent{MannedBy: pilot})
	}

	return p, nil
}

func (s *Scenario) loadTerrain(t *engine.Terrain) {
	for y, row := range s.rows {
		for x := 0; x < len(row); x++ {
			p := core.Point{X: x, Y: y}
			switch row[x] {
			case TileWall:
				t.SetWall(p, true)
			case TileSandbag:
				t.SetCover(p, parameter.SandbagFill)
			case TileCrate:
				t.SetCover(p, parameter.CrateFill)
			case TileThinRoof:
				t.SetRoof(p, engine.RoofThin)
			case TileRoof:
				t.SetRoof(p, engine.RoofThick)
			case TileGas:
				t.SetGas(p, true)
			}
		}
	}
}

func (s *Scenario) spawn(w *engine.World, defs TurretDefs, def EntityDef) (core.Entity, error) {
	at := core.Point{X: def.At[0], Y: def.At[1]}

	var turretDef registry.TurretDef
	if def.Kind == "turret" {
		var err error
		if turretDef, err = defs.Turret(def.Turret); err != nil {
			return 0, err
		}
	}

	e := w.CreateEntity()
	if err := w.Positions.SetPosition(e, at); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if def.Faction != "" {
		id, _ := w.Factions.Lookup(def.Faction)
		w.Components.Faction.SetComponent(e, component.FactionComponent{ID: id})
	}

	combat := component.CombatTargetComponent{PriorityFactor: 1, AutoTargetable: true}
	if def.Priority != nil {
		combat.PriorityFactor = max(*def.Priority, 0)
	}

	switch def.Kind {
	case "turret":
		angle := turretDef.RestAngle
		if def.Angle != nil {
			angle = *def.Angle
		}
		w.Components.Turret.SetComponent(e, component.TurretComponent{
			Angle:         vmath.NormalizeDegrees(angle),
			RotationSpeed: turretDef.RotationSpeed,
			RestAngle:     vmath.NormalizeDegrees(turretDef.RestAngle),
			Mortar:        turretDef.Mortar,
		})
		w.Components.Weapon.SetComponent(e, component.WeaponComponent{ID: turretDef.Weapon})
		w.Components.Building.SetComponent(e, component.BuildingComponent{Kind: "turret"})
		w.Components.CombatTarget.SetComponent(e, combat)
		if turretDef.Mannable {
			w.Components.Mannable.SetComponent(e, component.MannableComponent{})
		}

	case "pawn":
		pawn, err := pawnFromDef(def.Pawn)
		if err != nil {
			return 0, err
		}
		combat.ActiveThreat = pawn.Combatant && !pawn.Downed
		w.Components.Pawn.SetComponent(e, pawn)
		w.Components.CombatTarget.SetComponent(e, combat)

	case "building":
		w.Components.Building.SetComponent(e, component.BuildingComponent{Kind: def.Building})
		w.Components.CombatTarget.SetComponent(e, combat)
	}

	if def.Burning {
		w.Components.Burning.SetComponent(e, component.BurningComponent{})
	}
	if def.Explosive {
		w.Components.Explosive.SetComponent(e, component.ExplosiveComponent{})
	}
	return e, nil
}

func pawnFromDef(def *PawnDef) (component.PawnComponent, error) {
	if def == nil {
		def = &PawnDef{}
	}

	var p component.PawnComponent
	switch def.Kind {
	case "", "humanlike":
		p = component.PawnComponent{
			Kind:         component.PawnHumanlike,
			Intelligence: component.IntelligenceHumanlike,
			Combatant:    true,
			Flesh:        true,
			WieldsRanged: true,
		}
	case "animal":
		p = component.PawnComponent{
			Kind:         component.PawnAnimal,
			Intelligence: component.IntelligenceAnimal,
			Flesh:        true,
		}
	case "mechanoid":
		p = component.PawnComponent{
			Kind:         component.PawnMechanoid,
			Intelligence: component.IntelligenceToolUser,
			Combatant:    true,
			WieldsRanged: true,
		}
	default:
		return p, fmt.Errorf("%w: unknown pawn kind %q", ErrInvalidScenario, def.Kind)
	}

	p.Downed = def.Downed
	p.Prisoner = def.Prisoner
	p.Juvenile = def.Juvenile
	if def.Combatant != nil {
		p.Combatant = *def.Combatant
	}
	if def.WieldsRanged != nil {
		p.WieldsRanged = *def.WieldsRanged
	}
	return p, nil
}
