package navigation

import "github.com/lixenwraith/sentry/core"

// FieldCache keeps distance fields for recently queried origins
// Fields are dropped wholesale when the terrain generation changes
type FieldCache struct {
	width, height int
	capacity      int

	fields     map[core.Point]*DistanceField
	order      []core.Point // Insertion order for eviction
	generation uint64
}

// NewFieldCache creates a cache holding at most capacity fields
func NewFieldCache(width, height, capacity int) *FieldCache {
	if capacity < 1 {
		capacity = 1
	}
	return &FieldCache{
		width:    width,
		height:   height,
		capacity: capacity,
		fields:   make(map[core.Point]*DistanceField, capacity),
		order:    make([]core.Point, 0, capacity),
	}
}

// Field returns the distance field from origin, computing it if missing or stale
func (c *FieldCache) Field(origin core.Point, generation uint64, isBlocked WallChecker) *DistanceField {
	if generation != c.generation {
		c.Invalidate()
		c.generation = generation
	}

	if f, ok := c.fields[origin]; ok {
		if !f.Valid {
			f.Compute(origin, isBlocked)
		}
		return f
	}

	var f *DistanceField
	if len(c.order) >= c.capacity {
		// Evict oldest and reuse its buffers
		oldest := c.order[0]
		c.order = c.order[1:]
		f = c.fields[oldest]
		delete(c.fields, oldest)
	}
	if f == nil {
		f = NewDistanceField(c.width, c.height)
	}

	f.Compute(origin, isBlocked)
	c.fields[origin] = f
	c.order = append(c.order, origin)
	return f
}

// Invalidate drops all cached fields
func (c *FieldCache) Invalidate() {
	clear(c.fields)
	c.order = c.order[:0]
}

// Len returns the number of cached fields
func (c *FieldCache) Len() int {
	return len(c.order)
}
