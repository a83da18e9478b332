// Package scenario loads YAML maps and entity placements into an engine.World
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map legend
const (
	TileOpen     = '.'
	TileWall     = '#'
	TileSandbag  = 's' // Low cover
	TileCrate    = 'c' // High cover
	TileThinRoof = 'r'
	TileRoof     = 'R' // Thick roof
	TileGas      = 'g'
)

var ErrInvalidScenario = errors.New("invalid scenario")

// FactionDef declares a faction
type FactionDef struct {
	ID     uint16 `yaml:"id"`
	Name   string `yaml:"name"`
	Player bool   `yaml:"player"`
}

// PawnDef holds pawn flags, unset flags keep the kind defaults
type PawnDef struct {
	Kind         string `yaml:"kind"` // humanlike, animal, mechanoid
	Downed       bool   `yaml:"downed"`
	Prisoner     bool   `yaml:"prisoner"`
	Juvenile     bool   `yaml:"juvenile"`
	Combatant    *bool  `yaml:"combatant"`
	WieldsRanged *bool  `yaml:"ranged"`
}

// EntityDef places one entity
type EntityDef struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"` // turret, pawn, building
	Faction  string   `yaml:"faction"`
	At       [2]int   `yaml:"at"`
	Priority *float64 `yaml:"priority"`

	// Turret
	Turret   string   `yaml:"turret"`
	Angle    *float64 `yaml:"angle"`
	MannedBy string   `yaml:"manned_by"`

	// Pawn
	Pawn *PawnDef `yaml:"pawn"`

	// Building
	Building  string `yaml:"building"`
	Burning   bool   `yaml:"burning"`
	Explosive bool   `yaml:"explosive"`
}

// Scenario is a decoded scenario file
type Scenario struct {
	Name     string       `yaml:"name"`
	Map      string       `yaml:"map"`
	Factions []FactionDef `yaml:"factions"`
	Hostile  [][2]string  `yaml:"hostile"`
	Entities []EntityDef  `yaml:"entities"`

	rows []string
}

// Load reads a scenario file
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and checks the map shape and name references
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	for _, line := range strings.Split(s.Map, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		s.rows = append(s.rows, line)
	}
	if len(s.rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidScenario)
	}
	width := len(s.rows[0])
	for i, row := range s.rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: map row %d has width %d, want %d", ErrInvalidScenario, i, len(row), width)
		}
		for j := 0; j < len(row); j++ {
			if !validTile(row[j]) {
				return nil, fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrInvalidScenario, row[j], j, i)
			}
		}
	}

	factions := make(map[string]bool, len(s.Factions))
	ids := make(map[uint16]bool, len(s.Factions))
	for _, f := range s.Factions {
		if f.ID == 0 || f.Name == "" {
			return nil, fmt.Errorf("%w: faction needs a non-zero id and a name", ErrInvalidScenario)
		}
		if factions[f.Name] || ids[f.ID] {
			return nil, fmt.Errorf("%w: duplicate faction %q", ErrInvalidScenario, f.Name)
		}
		factions[f.Name] = true
		ids[f.ID] = true
	}
	for _, pair := range s.Hostile {
		for _, name := range pair {
			if !factions[name] {
				return nil, fmt.Errorf("%w: hostility references unknown faction %q", ErrInvalidScenario, name)
			}
		}
	}

	names := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name != "" {
			if names[e.Name] {
				return nil, fmt.Errorf("%w: duplicate entity %q", ErrInvalidScenario, e.Name)
			}
			names[e.Name] = true
		}
		if e.Faction != "" && !factions[e.Faction] {
			return nil, fmt.Errorf("%w: entity %d references unknown faction %q", ErrInvalidScenario, i, e.Faction)
		}
		switch e.Kind {
		case "turret":
			if e.Turret == "" {
				return nil, fmt.Errorf("%w: turret entity %d has no turret id", ErrInvalidScenario, i)
			}
		case "pawn", "building":
		default:
			return nil, fmt.Errorf("%w: entity %d has unknown kind %q", ErrInvalidScenario, i, e.Kind)
		}
	}
	for _, e := range s.Entities {
		if e.MannedBy != "" && !names[e.MannedBy] {
			return nil, fmt.Errorf("%w: %q manned by unknown entity %q", ErrInvalidScenario, e.Name, e.MannedBy)
		}
	}

	return &s, nil
}

// Width returns the map width in cells
func (s *Scenario) Width() int { return len(s.rows[0]) }

// Height returns the map height in cells
func (s *Scenario) Height() int { return len(s.rows) }

func validTile(b byte) bool {
	switch b {
	case TileOpen, TileWall, TileSandbag, TileCrate, TileThinRoof, TileRoof, TileGas:
		return true
	}
	return false
}
