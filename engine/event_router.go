package engine

import "github.com/lixenwraith/sentry/event"

// EventHandler processes specific event types
type EventHandler interface {
	// HandleEvent is called synchronously during dispatch
	HandleEvent(ev event.Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// HandlerFunc adapts a function to EventHandler for a fixed set of types
type HandlerFunc struct {
	Fn    func(ev event.Event)
	Types []event.EventType
}

func (h HandlerFunc) HandleEvent(ev event.Event)    { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []event.EventType { return h.Types }

// EventRouter fans queued turret events out to handlers
// Dispatch runs on the simulation goroutine, handlers for one type run in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
	reported uint64 // Queue drop count already surfaced by TakeDropped
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll drains the queue and routes each event, returns the number drained
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// TakeDropped returns events lost to queue overflow since the previous call
func (r *EventRouter) TakeDropped() uint64 {
	total := r.queue.Dropped()
	n := total - r.reported
	r.reported = total
	return n
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
