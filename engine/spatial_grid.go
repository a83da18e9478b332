package engine

import "github.com/lixenwraith/sentry/core"

// MaxEntitiesPerCell is set to 15 so that Cell fits exactly into 128 bytes
// 15 * 8 (Entities) + 1 (Count) + 7 (Padding) = 128 bytes
const MaxEntitiesPerCell = 15

// Cell holds a fixed number of entities, value type for contiguous layout
type Cell struct {
	Count    uint8
	_        [7]byte
	Entities [MaxEntitiesPerCell]core.Entity
}

// SpatialGrid is a dense 2D grid for allocation-free spatial queries
type SpatialGrid struct {
	Width  int
	Height int
	Cells  []Cell // index = y*Width + x
}

// NewSpatialGrid creates a new grid with the specified dimensions
func NewSpatialGrid(width, height int) *SpatialGrid {
	return &SpatialGrid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

func (g *SpatialGrid) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Add inserts an entity at p
// Returns false if out of bounds or the cell is full
func (g *SpatialGrid) Add(e core.Entity, p core.Point) bool {
	if !g.inBounds(p) {
		return false
	}
	cell := &g.Cells[p.Y*g.Width+p.X]
	if cell.Count >= MaxEntitiesPerCell {
		return false
	}
	cell.Entities[cell.Count] = e
	cell.Count++
	return true
}

// Remove deletes an entity at p using swap-remove
func (g *SpatialGrid) Remove(e core.Entity, p core.Point) {
	if !g.inBounds(p) {
		return
	}
	cell := &g.Cells[p.Y*g.Width+p.X]
	for i := uint8(0); i < cell.Count; i++ {
		if cell.Entities[i] == e {
			cell.Count--
			if i < cell.Count {
				cell.Entities[i] = cell.Entities[cell.Count]
			}
			cell.Entities[cell.Count] = 0
			return
		}
	}
}

// GetAllAt returns a slice view of entities at p
// Callers must copy or hold the owner's lock
func (g *SpatialGrid) GetAllAt(p core.Point) []core.Entity {
	if !g.inBounds(p) {
		return nil
	}
	cell := &g.Cells[p.Y*g.Width+p.X]
	if cell.Count == 0 {
		return nil
	}
	return cell.Entities[:cell.Count]
}

// HasAny returns true if at least one entity is at p
func (g *SpatialGrid) HasAny(p core.Point) bool {
	if !g.inBounds(p) {
		return false
	}
	return g.Cells[p.Y*g.Width+p.X].Count > 0
}

// Clear removes all entities from all cells
func (g *SpatialGrid) Clear() {
	for i := range g.Cells {
		g.Cells[i].Count = 0
	}
}
