package engine

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/sentry/core"
	"github.com/lixenwraith/sentry/event"
)

// System is updated once per simulation tick
type System interface {
	Update()
	Priority() int // Lower values run first
}

// World contains all entities, their components and the static map
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	Components ComponentStore
	Positions  *PositionStore
	Terrain    *Terrain
	Factions   *FactionTable

	eventQueue *event.EventQueue
	tick       atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world with open terrain
func NewWorld(width, height int) *World {
	return &World{
		nextEntityID: 1,
		Components:   newComponentStore(),
		Positions:    NewPositionStore(width, height),
		Terrain:      NewTerrain(width, height),
		Factions:     NewFactionTable(),
		eventQueue:   event.NewEventQueue(),
	}
}

// Width returns the map width
func (w *World) Width() int { return w.Terrain.Width }

// Height returns the map height
func (w *World) Height() int { return w.Terrain.Height }

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.Positions.RemoveEntity(e)
	for _, s := range w.Components.all() {
		s.RemoveEntity(e)
	}
}

// Alive reports whether the entity still has a position
func (w *World) Alive(e core.Entity) bool {
	return e != 0 && w.Positions.HasEntity(e)
}

// Clear removes all entities and components, terrain and factions are kept
func (w *World) Clear() {
	w.mu.Lock()
	w.nextEntityID = 1
	w.mu.Unlock()

	w.Positions.ClearAllComponents()
	for _, s := range w.Components.all() {
		s.ClearAllComponents()
	}
}

// AddSystem adds a system and keeps systems sorted by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Bubble sort, small N, stable for equal priorities
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Update advances the tick and runs all systems sequentially
func (w *World) Update() {
	w.RunSafe(w.UpdateLocked)
}

// UpdateLocked runs one tick assuming the caller holds the update lock
func (w *World) UpdateLocked() {
	w.tick.Add(1)
	for _, system := range w.Systems() {
		system.Update()
	}
}

// Tick returns the current simulation tick
func (w *World) Tick() int64 {
	return w.tick.Load()
}

// PushEvent emits an event stamped with the current tick
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.Event{
		Type:    eventType,
		Payload: payload,
		Tick:    w.tick.Load(),
	})
}

// Events returns the world's event queue
func (w *World) Events() *event.EventQueue {
	return w.eventQueue
}
