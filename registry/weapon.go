package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/targeting"
	"github.com/lixenwraith/sentry/vmath"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownWeapon = errors.New("unknown weapon")
	ErrUnknownTurret = errors.New("unknown turret")
)

// WeaponDef describes a ranged attack
type WeaponDef struct {
	ID                      string  `yaml:"id"`
	Name                    string  `yaml:"name"`
	MinRange                float64 `yaml:"min_range"`
	Range                   float64 `yaml:"range"`
	ForcedMissRadius        float64 `yaml:"forced_miss_radius"`         // [0, vmath.RadialPatternMaxRadius]
	AvoidFriendlyFireRadius float64 `yaml:"avoid_friendly_fire_radius"` // [0, vmath.RadialPatternMaxRadius]
	RangedAttackScoreOffset float64 `yaml:"score_offset"`
	Projectile              bool    `yaml:"projectile"`
	FliesOverhead           bool    `yaml:"flies_overhead"`
	RequireLineOfSight      bool    `yaml:"require_line_of_sight"`
	EMPOnly                 bool    `yaml:"emp"`
	Incendiary              bool    `yaml:"incendiary"`
	WarmupTicks             int     `yaml:"warmup_ticks"`
	CooldownTicks           int     `yaml:"cooldown_ticks"`
}

// Verb converts the definition into the targeting attack description
func (d WeaponDef) Verb() targeting.Verb {
	return targeting.Verb{
		MinRange:                d.MinRange,
		Range:                   d.Range,
		ForcedMissRadius:        d.ForcedMissRadius,
		AvoidFriendlyFireRadius: d.AvoidFriendlyFireRadius,
		RangedAttackScoreOffset: d.RangedAttackScoreOffset,
		ProjectileShoot:         d.Projectile,
		ProjectileFliesOverhead: d.FliesOverhead,
		RequireLineOfSight:      d.RequireLineOfSight,
		EMPOnly:                 d.EMPOnly,
		Incendiary:              d.Incendiary,
		WarmupTicks:             d.WarmupTicks,
		CooldownTicks:           d.CooldownTicks,
	}
}

// TurretDef describes a turret building
type TurretDef struct {
	ID            string  `yaml:"id"`
	Weapon        string  `yaml:"weapon"`
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per tick
	RestAngle     float64 `yaml:"rest_angle"`
	Mortar        bool    `yaml:"mortar"`
	Mannable      bool    `yaml:"mannable"`
}

type catalogFile struct {
	Weapons []WeaponDef `yaml:"weapons"`
	Turrets []TurretDef `yaml:"turrets"`
}

// Catalog is the weapon and turret lookup table
type Catalog struct {
	weapons *table[WeaponDef]
	turrets *table[TurretDef]
}

// LoadCatalog reads weapon and turret definitions from a YAML file
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	c := &Catalog{
		weapons: newTable[WeaponDef](len(f.Weapons)),
		turrets: newTable[TurretDef](len(f.Turrets)),
	}

	for _, w := range f.Weapons {
		if w.ID == "" {
			return nil, errors.New("weapon without id")
		}
		if w.Range <= 0 || w.MinRange < 0 || w.MinRange > w.Range {
			return nil, fmt.Errorf("weapon %q: invalid range [%g, %g]", w.ID, w.MinRange, w.Range)
		}
		if err := checkRadius(w.ID, "forced_miss_radius", w.ForcedMissRadius); err != nil {
			return nil, err
		}
		if err := checkRadius(w.ID, "avoid_friendly_fire_radius", w.AvoidFriendlyFireRadius); err != nil {
			return nil, err
		}
		if !c.weapons.add(w.ID, w) {
			return nil, fmt.Errorf("duplicate weapon %q", w.ID)
		}
	}

	for _, t := range f.Turrets {
		if t.ID == "" {
			return nil, errors.New("turret without id")
		}
		if _, ok := c.weapons.get(t.Weapon); !ok {
			return nil, fmt.Errorf("turret %q: %w %q", t.ID, ErrUnknownWeapon, t.Weapon)
		}
		if t.RotationSpeed <= 0 {
			t.RotationSpeed = parameter.TurretDefaultRotationSpeed
		}
		if !c.turrets.add(t.ID, t) {
			return nil, fmt.Errorf("duplicate turret %q", t.ID)
		}
	}

	return c, nil
}

// checkRadius rejects sampling radii the radial cell pattern cannot cover
func checkRadius(id, field string, r float64) error {
	if r < 0 || r > vmath.RadialPatternMaxRadius {
		return fmt.Errorf("weapon %q: %s %g outside [0, %d]", id, field, r, vmath.RadialPatternMaxRadius)
	}
	return nil
}

// Weapon returns a weapon definition by id
func (c *Catalog) Weapon(id string) (WeaponDef, error) {
	w, ok := c.weapons.get(id)
	if !ok {
		return WeaponDef{}, fmt.Errorf("%w %q", ErrUnknownWeapon, id)
	}
	return w, nil
}

// Turret returns a turret definition by id
func (c *Catalog) Turret(id string) (TurretDef, error) {
	t, ok := c.turrets.get(id)
	if !ok {
		return TurretDef{}, fmt.Errorf("%w %q", ErrUnknownTurret, id)
	}
	return t, nil
}

// TurretIDs returns turret ids in definition order
func (c *Catalog) TurretIDs() []string {
	return c.turrets.ids()
}

// WeaponCount returns the number of loaded weapons
func (c *Catalog) WeaponCount() int {
	return c.weapons.len()
}
