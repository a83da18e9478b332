package registry

import (
	"slices"
	"sync"
)

// table is a name lookup that remembers insertion order
type table[T any] struct {
	byID  map[string]T
	order []string
}

func newTable[T any](capacity int) *table[T] {
	return &table[T]{byID: make(map[string]T, capacity)}
}

// add inserts v under id, false when id is taken
func (t *table[T]) add(id string, v T) bool {
	if _, dup := t.byID[id]; dup {
		return false
	}
	t.byID[id] = v
	t.order = append(t.order, id)
	return true
}

// set inserts or replaces, a replaced id keeps its position
func (t *table[T]) set(id string, v T) {
	if !t.add(id, v) {
		t.byID[id] = v
	}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.byID[id]
	return v, ok
}

func (t *table[T]) ids() []string {
	return slices.Clone(t.order)
}

func (t *table[T]) len() int {
	return len(t.order)
}

// SystemFactory creates a system from its dependencies
// Returns engine.System, typed as any to keep this package free of engine imports
type SystemFactory func(deps any) any

var (
	systemsMu sync.RWMutex
	systems   = newTable[SystemFactory](8)
)

// RegisterSystem adds or replaces a system factory by name
func RegisterSystem(name string, factory SystemFactory) {
	systemsMu.Lock()
	defer systemsMu.Unlock()
	systems.set(name, factory)
}

// GetSystem retrieves a system factory by name
func GetSystem(name string) (SystemFactory, bool) {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	return systems.get(name)
}

// SystemNames returns all registered system names, sorted
func SystemNames() []string {
	systemsMu.RLock()
	defer systemsMu.RUnlock()
	names := systems.ids()
	slices.Sort(names)
	return names
}
