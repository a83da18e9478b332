package engine

import (
	"sync"

	"github.com/lixenwraith/sentry/core"
)

// RoofKind classifies overhead cover
type RoofKind uint8

const (
	RoofNone RoofKind = iota
	RoofThin
	RoofThick // Blocks overhead projectiles
)

// TerrainCell is the static state of one map cell
type TerrainCell struct {
	Wall bool    // Blocks sight and movement
	Fill float64 // Cover fill in [0, 1], walls are full
	Roof RoofKind
	Gas  bool // Blinding gas
}

// Terrain is the static map layer
// Generation increments on every change that affects movement
type Terrain struct {
	mu         sync.RWMutex
	Width      int
	Height     int
	cells      []TerrainCell
	generation uint64
}

// NewTerrain creates open terrain
func NewTerrain(width, height int) *Terrain {
	return &Terrain{
		Width:  width,
		Height: height,
		cells:  make([]TerrainCell, width*height),
	}
}

// InBounds reports whether p lies on the map
func (t *Terrain) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < t.Width && p.Y >= 0 && p.Y < t.Height
}

// Cell returns the cell at p, out of bounds reads as solid wall
func (t *Terrain) Cell(p core.Point) TerrainCell {
	if !t.InBounds(p) {
		return TerrainCell{Wall: true, Fill: 1}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cells[p.Y*t.Width+p.X]
}

func (t *Terrain) mutate(p core.Point, movement bool, fn func(*TerrainCell)) {
	if !t.InBounds(p) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.cells[p.Y*t.Width+p.X])
	if movement {
		t.generation++
	}
}

// SetWall places or removes a wall
func (t *Terrain) SetWall(p core.Point, wall bool) {
	t.mutate(p, true, func(c *TerrainCell) {
		c.Wall = wall
		if wall {
			c.Fill = 1
		} else {
			c.Fill = 0
		}
	})
}

// SetCover sets the cover fill of a see-through obstacle such as sandbags
func (t *Terrain) SetCover(p core.Point, fill float64) {
	t.mutate(p, false, func(c *TerrainCell) { c.Fill = fill })
}

// SetRoof sets the roof kind
func (t *Terrain) SetRoof(p core.Point, roof RoofKind) {
	t.mutate(p, false, func(c *TerrainCell) { c.Roof = roof })
}

// SetGas toggles blinding gas
func (t *Terrain) SetGas(p core.Point, gas bool) {
	t.mutate(p, false, func(c *TerrainCell) { c.Gas = gas })
}

// BlocksSight reports whether sight cannot pass through p
func (t *Terrain) BlocksSight(p core.Point) bool {
	return t.Cell(p).Wall
}

// BlocksMovement reports whether a walker cannot enter p
func (t *Terrain) BlocksMovement(p core.Point) bool {
	return t.Cell(p).Wall
}

// Generation returns the movement-affecting change counter
func (t *Terrain) Generation() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.generation
}
