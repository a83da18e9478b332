package engine

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/sentry/component"
	"github.com/lixenwraith/sentry/core"
)

// PositionStore keeps PositionComponent and the spatial grid consistent
type PositionStore struct {
	*Store[component.PositionComponent]
	mu   sync.RWMutex
	grid *SpatialGrid
}

// NewPositionStore creates a position store over a width x height grid
func NewPositionStore(width, height int) *PositionStore {
	return &PositionStore{
		Store: NewStore[component.PositionComponent](),
		grid:  NewSpatialGrid(width, height),
	}
}

// SetPosition places or moves an entity
// Returns an error when the cell is out of bounds or full, the entity keeps its old position
func (ps *PositionStore) SetPosition(e core.Entity, p core.Point) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	old, had := ps.Store.GetComponent(e)
	if had {
		if old.Point() == p {
			return nil
		}
		ps.grid.Remove(e, old.Point())
	}

	if !ps.grid.Add(e, p) {
		if had {
			ps.grid.Add(e, old.Point())
		}
		return fmt.Errorf("cell (%d,%d) out of bounds or full", p.X, p.Y)
	}
	ps.Store.SetComponent(e, component.PositionComponent{X: p.X, Y: p.Y})
	return nil
}

// GetPosition returns the cell of an entity
func (ps *PositionStore) GetPosition(e core.Entity) (core.Point, bool) {
	pos, ok := ps.Store.GetComponent(e)
	return pos.Point(), ok
}

// RemoveEntity removes the component and the grid entry
func (ps *PositionStore) RemoveEntity(e core.Entity) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if pos, ok := ps.Store.GetComponent(e); ok {
		ps.grid.Remove(e, pos.Point())
	}
	ps.Store.RemoveEntity(e)
}

// ClearAllComponents empties both the store and the grid
func (ps *PositionStore) ClearAllComponents() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.grid.Clear()
	ps.Store.ClearAllComponents()
}

// GetAllEntityAt returns a copy of the entities occupying p
func (ps *PositionStore) GetAllEntityAt(p core.Point) []core.Entity {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	view := ps.grid.GetAllAt(p)
	if len(view) == 0 {
		return nil
	}
	result := make([]core.Entity, len(view))
	copy(result, view)
	return result
}

// HasAnyAt reports whether any entity occupies p
func (ps *PositionStore) HasAnyAt(p core.Point) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.grid.HasAny(p)
}
