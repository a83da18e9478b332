package engine

import (
	"sync"

	"github.com/lixenwraith/sentry/core"
)

// FactionTable holds faction names and the hostility relation
// Relations are configured at load time and only read during simulation
type FactionTable struct {
	mu      sync.RWMutex
	player  core.FactionID
	names   map[core.FactionID]string
	ids     map[string]core.FactionID
	hostile map[[2]core.FactionID]bool
}

// NewFactionTable creates an empty table
func NewFactionTable() *FactionTable {
	return &FactionTable{
		names:   make(map[core.FactionID]string),
		ids:     make(map[string]core.FactionID),
		hostile: make(map[[2]core.FactionID]bool),
	}
}

// Define registers a faction name, the first defined player faction wins
func (ft *FactionTable) Define(id core.FactionID, name string, player bool) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.names[id] = name
	ft.ids[name] = id
	if player && ft.player == core.FactionNone {
		ft.player = id
	}
}

// SetHostile sets the symmetric hostility between two factions
func (ft *FactionTable) SetHostile(a, b core.FactionID, hostile bool) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.hostile[[2]core.FactionID{a, b}] = hostile
	ft.hostile[[2]core.FactionID{b, a}] = hostile
}

// Hostile reports whether two factions are hostile
// A faction is never hostile to itself, unaffiliated entities are never hostile
func (ft *FactionTable) Hostile(a, b core.FactionID) bool {
	if a == b || a == core.FactionNone || b == core.FactionNone {
		return false
	}
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.hostile[[2]core.FactionID{a, b}]
}

// Player returns the player faction
func (ft *FactionTable) Player() core.FactionID {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.player
}

// Name returns the faction name, empty if undefined
func (ft *FactionTable) Name(id core.FactionID) string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.names[id]
}

// Lookup resolves a faction by name
func (ft *FactionTable) Lookup(name string) (core.FactionID, bool) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	id, ok := ft.ids[name]
	return id, ok
}
