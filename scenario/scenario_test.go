package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/parameter"
	"github.com/lixenwraith/sentry/registry"
)

const testCatalog = `
weapons:
  - id: rifle
    range: 25
    projectile: true
    require_line_of_sight: true
turrets:
  - id: mini
    weapon: rifle
    rotation_speed: 6
    rest_angle: -90
  - id: manned
    weapon: rifle
    mannable: true
`

const testScenario = `
name: yard
map: |
  ##########
  #........#
  #..s..c..#
  #..RRr...#
  #....g...#
  ##########
factions:
  - {id: 1, name: colony, player: true}
  - {id: 2, name: raiders}
hostile:
  - [colony, raiders]
entities:
  - {name: t1, kind: turret, turret: mini, faction: colony, at: [2, 1]}
  - {name: t2, kind: turret, turret: manned, faction: colony, at: [7, 1], angle: 370, manned_by: gunner}
  - {name: gunner, kind: pawn, faction: colony, at: [7, 2]}
  - {name: dog, kind: pawn, faction: colony, at: [5, 1], pawn: {kind: animal}}
  - {name: r1, kind: pawn, faction: raiders, at: [4, 4], pawn: {ranged: false}, priority: 2}
  - {name: bot, kind: pawn, faction: raiders, at: [8, 4], pawn: {kind: mechanoid, downed: true}}
  - {name: depot, kind: building, building: depot, faction: colony, at: [1, 4], burning: true, explosive: true}
`

func newCatalog(t *testing.T) *registry.Catalog {
	t.Helper()
	c, err := registry.ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func TestScenario_Build(t *testing.T) {
	s, err := Parse([]byte(testScenario))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w, p, err := s.Build(newCatalog(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if w.Width() != 10 || w.Height() != 6 {
		t.Fatalf("world size %dx%d, want 10x6", w.Width(), w.Height())
	}
	if len(p.Turrets) != 2 || p.Turrets[0] != p.Names["t1"] || p.Turrets[1] != p.Names["t2"] {
		t.Errorf("unexpected turret order %v", p.Turrets)
	}

	t.Run("terrain", func(t *testing.T) {
		cases := []struct {
			at   core.Point
			want engine.TerrainCell
		}{
			{core.Point{X: 0, Y: 0}, engine.TerrainCell{Wall: true, Fill: 1}},
			{core.Point{X: 3, Y: 2}, engine.TerrainCell{Fill: parameter.SandbagFill}},
			{core.Point{X: 6, Y: 2}, engine.TerrainCell{Fill: parameter.CrateFill}},
			{core.Point{X: 3, Y: 3}, engine.TerrainCell{Roof: engine.RoofThick}},
			{core.Point{X: 5, Y: 3}, engine.TerrainCell{Roof: engine.RoofThin}},
			{core.Point{X: 5, Y: 4}, engine.TerrainCell{Gas: true}},
			{core.Point{X: 1, Y: 1}, engine.TerrainCell{}},
		}
		for _, tc := range cases {
			if got := w.Terrain.Cell(tc.at); got != tc.want {
				t.Errorf("cell %v = %+v, want %+v", tc.at, got, tc.want)
			}
		}
	})

	t.Run("factions", func(t *testing.T) {
		if w.Factions.Player() != 1 {
			t.Errorf("player faction %d, want 1", w.Factions.Player())
		}
		if !w.Factions.Hostile(1, 2) || !w.Factions.Hostile(2, 1) {
			t.Error("colony and raiders should be hostile")
		}
	})

	t.Run("turrets", func(t *testing.T) {
		t1, _ := w.Components.Turret.GetComponent(p.Names["t1"])
		if t1.Angle != 270 || t1.RestAngle != 270 || t1.RotationSpeed != 6 {
			t.Errorf("t1 = %+v", t1)
		}
		if w.Components.Mannable.HasEntity(p.Names["t1"]) {
			t.Error("t1 should not be mannable")
		}
		weapon, _ := w.Components.Weapon.GetComponent(p.Names["t1"])
		if weapon.ID != "rifle" {
			t.Errorf("weapon %q", weapon.ID)
		}

		t2, _ := w.Components.Turret.GetComponent(p.Names["t2"])
		if t2.Angle != 10 {
			t.Errorf("t2 angle %v, want normalised 10", t2.Angle)
		}
		if t2.RotationSpeed != parameter.TurretDefaultRotationSpeed {
			t.Errorf("t2 speed %v", t2.RotationSpeed)
		}
		m, _ := w.Components.Mannable.GetComponent(p.Names["t2"])
		if m.MannedBy != p.Names["gunner"] {
			t.Errorf("t2 manned by %d, want gunner", m.MannedBy)
		}
	})

	t.Run("pawns", func(t *testing.T) {
		dog, _ := w.Components.Pawn.GetComponent(p.Names["dog"])
		if dog.Kind != component.PawnAnimal || dog.Combatant {
			t.Errorf("dog = %+v", dog)
		}
		r1, _ := w.Components.Pawn.GetComponent(p.Names["r1"])
		if r1.WieldsRanged || !r1.Combatant {
			t.Errorf("r1 = %+v", r1)
		}
		combat, _ := w.Components.CombatTarget.GetComponent(p.Names["r1"])
		if combat.PriorityFactor != 2 || !combat.ActiveThreat {
			t.Errorf("r1 combat = %+v", combat)
		}
		bot, _ := w.Components.CombatTarget.GetComponent(p.Names["bot"])
		if bot.ActiveThreat {
			t.Error("downed mechanoid should not be an active threat")
		}
	})

	t.Run("buildings", func(t *testing.T) {
		depot := p.Names["depot"]
		if !w.Components.Burning.HasEntity(depot) || !w.Components.Explosive.HasEntity(depot) {
			t.Error("depot should be burning and explosive")
		}
		b, _ := w.Components.Building.GetComponent(depot)
		if b.Kind != "depot" {
			t.Errorf("building kind %q", b.Kind)
		}
	})
}

func TestParse_Errors(t *testing.T) {
	base := "factions:\n  - {id: 1, name: a}\n"
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty map", base, "empty map"},
		{"ragged map", "map: |\n  ...\n  ..\n" + base, "width"},
		{"bad tile", "map: |\n  .x.\n" + base, "unknown tile"},
		{"zero faction", "map: |\n  ...\nfactions:\n  - {id: 0, name: a}\n", "non-zero"},
		{"duplicate faction", "map: |\n  ...\nfactions:\n  - {id: 1, name: a}\n  - {id: 2, name: a}\n", "duplicate faction"},
		{"unknown hostile", "map: |\n  ...\n" + base + "hostile:\n  - [a, b]\n", "unknown faction"},
		{"unknown kind", "map: |\n  ...\n" + base + "entities:\n  - {kind: tree, at: [0, 0]}\n", "unknown kind"},
		{"turret without def", "map: |\n  ...\n" + base + "entities:\n  - {kind: turret, at: [0, 0]}\n", "no turret id"},
		{"unknown pilot", "map: |\n  ...\n" + base + "entities:\n  - {name: t, kind: turret, turret: x, manned_by: p, at: [0, 0]}\n", "unknown entity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("error %v is not ErrInvalidScenario", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScenario_BuildErrors(t *testing.T) {
	catalog := newCatalog(t)
	head := "map: |\n  ....\n  ....\nfactions:\n  - {id: 1, name: a}\n"

	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{"unknown turret", head + "entities:\n  - {kind: turret, turret: nope, at: [0, 0]}\n", registry.ErrUnknownTurret},
		{"out of bounds", head + "entities:\n  - {kind: pawn, at: [9, 9]}\n", ErrInvalidScenario},
		{"not mannable", head + "entities:\n  - {name: t, kind: turret, turret: mini, manned_by: p, at: [0, 0]}\n  - {name: p, kind: pawn, at: [1, 0]}\n", ErrInvalidScenario},
		{"building pilot", head + "entities:\n  - {name: t, kind: turret, turret: manned, manned_by: b, at: [0, 0]}\n  - {name: b, kind: building, at: [1, 0]}\n", ErrInvalidScenario},
		{"bad pawn kind", head + "entities:\n  - {kind: pawn, pawn: {kind: ghost}, at: [0, 0]}\n", ErrInvalidScenario},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if _, _, err := s.Build(catalog); !errors.Is(err, tt.target) {
				t.Errorf("got %v, want %v", err, tt.target)
			}
		})
	}
}

func TestScenario_PopulateTooSmall(t *testing.T) {
	s, err := Parse([]byte("map: |\n  ......\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Populate(engine.NewWorld(4, 4), newCatalog(t)); !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("expected ErrInvalidScenario, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yard.yaml")
	if err := os.WriteFile(path, []byte(testScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "yard" || len(s.Entities) != 7 {
		t.Errorf("loaded %q with %d entities", s.Name, len(s.Entities))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
