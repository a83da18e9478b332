package event

import (
	"sync"

	"github.com/lixenwraith/sentry/parameter"
)

// EventQueue is a bounded FIFO of simulation events
// Producers are the simulation systems, the dispatch system is the only consumer
// When full the oldest pending event is dropped and counted
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]Event
	head    int // Index of the oldest pending event
	count   int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, overwriting the oldest one when the ring is full
func (eq *EventQueue) Push(ev Event) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	idx := (eq.head + eq.count) & parameter.EventBufferMask
	eq.ring[idx] = ev
	if eq.count == parameter.EventQueueSize {
		eq.head = (eq.head + 1) & parameter.EventBufferMask
		eq.dropped++
		return
	}
	eq.count++
}

// Consume drains pending events in FIFO order, nil when empty
func (eq *EventQueue) Consume() []Event {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.count == 0 {
		return nil
	}
	result := make([]Event, eq.count)
	for i := range result {
		idx := (eq.head + i) & parameter.EventBufferMask
		result[i] = eq.ring[idx]
		eq.ring[idx] = Event{}
	}
	eq.head = (eq.head + eq.count) & parameter.EventBufferMask
	eq.count = 0
	return result
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.count
}

// Dropped returns how many events were overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}
