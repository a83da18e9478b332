package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var ErrCircularDependency = errors.New("circular dependency detected in services")

type phase uint8

const (
	phaseRegistered phase = iota
	phaseInitialized
	phaseStarted
)

type entry struct {
	svc  Service
	args []any
}

// Hub owns the sandbox's long-lived services and drives them through Init, Start and Stop
// Dependencies come first on the way up and last on the way down
type Hub struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string // Dependency order, resolved by InitAll
	phase   phase
	running []string // Started services, stopped in reverse
}

// NewHub creates an empty service hub
func NewHub() *Hub {
	return &Hub{entries: make(map[string]entry)}
}

// Register adds a service instance with the args passed to its Init
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.entries[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}
	if h.phase != phaseRegistered {
		return fmt.Errorf("service %s: hub already initialized", name)
	}
	h.entries[name] = entry{svc: svc, args: args}
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[name]
	return e.svc, ok
}

// Lookup retrieves a service by name as its concrete type
func Lookup[T Service](h *Hub, name string) (T, bool) {
	svc, ok := h.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := svc.(T)
	return typed, ok
}

// InitAll orders services by dependency and calls Init on each
// When one fails the ones already initialized are stopped in reverse
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}

	for i, name := range order {
		e := h.entries[name]
		if err := e.svc.Init(e.args...); err != nil {
			h.stopReverse(order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
	}
	h.order = order
	h.phase = phaseInitialized
	return nil
}

// StartAll starts services in dependency order
// When one fails the ones already started are stopped in reverse
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.phase != phaseInitialized {
		return errors.New("services not initialized")
	}

	for i, name := range h.order {
		if err := h.entries[name].svc.Start(); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
	}
	h.running = slices.Clone(h.order)
	h.phase = phaseStarted
	return nil
}

// StopAll stops started services in reverse order
// Every service is stopped, errors are joined
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.stopReverse(h.running)
	h.running = nil
	if h.phase == phaseStarted {
		h.phase = phaseInitialized
	}
	return err
}

func (h *Hub) stopReverse(names []string) error {
	var errs []error
	for _, name := range slices.Backward(names) {
		if err := h.entries[name].svc.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("service %s stop: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Order returns the resolved dependency order, nil before InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.order)
}

// Names returns all registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// resolve orders services depth first, dependencies before dependents
// Roots and siblings are visited by name so the order is stable
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.entries))
	order := make([]string, 0, len(h.entries))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			cycle := append(path[slices.Index(path, name):], name)
			return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(cycle, " -> "))
		}

		state[name] = visiting
		path = append(path, name)
		deps := slices.Sorted(slices.Values(h.entries[name].svc.Dependencies()))
		for _, dep := range deps {
			if _, ok := h.entries[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}

	names := make([]string, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
