package engine

import "github.com/lixenwraith/sentry/component"

// ComponentStore provides cached pointers to typed component stores
type ComponentStore struct {
	Faction      *Store[component.FactionComponent]
	Pawn         *Store[component.PawnComponent]
	CombatTarget *Store[component.CombatTargetComponent]
	AttackRecord *Store[component.AttackRecordComponent]

	Turret   *Store[component.TurretComponent]
	Weapon   *Store[component.WeaponComponent]
	Mannable *Store[component.MannableComponent]

	Building  *Store[component.BuildingComponent]
	Explosive *Store[component.ExplosiveComponent]
	Burning   *Store[component.BurningComponent]
}

func newComponentStore() ComponentStore {
	return ComponentStore{
		Faction:      NewStore[component.FactionComponent](),
		Pawn:         NewStore[component.PawnComponent](),
		CombatTarget: NewStore[component.CombatTargetComponent](),
		AttackRecord: NewStore[component.AttackRecordComponent](),
		Turret:       NewStore[component.TurretComponent](),
		Weapon:       NewStore[component.WeaponComponent](),
		Mannable:     NewStore[component.MannableComponent](),
		Building:     NewStore[component.BuildingComponent](),
		Explosive:    NewStore[component.ExplosiveComponent](),
		Burning:      NewStore[component.BurningComponent](),
	}
}

// all returns every store for lifecycle operations
func (cs *ComponentStore) all() []AnyStore {
	return []AnyStore{
		cs.Faction, cs.Pawn, cs.CombatTarget, cs.AttackRecord,
		cs.Turret, cs.Weapon, cs.Mannable,
		cs.Building, cs.Explosive, cs.Burning,
	}
}
