package event

// Handler processes routed events within a context T.
type Handler[T any] interface {
	// HandleEvent is called synchronously during DispatchAll.
	HandleEvent(ctx T, ev Event)

	// EventTypes lists the types the handler is registered for.
	EventTypes() []EventType
}

// Router dispatches queued events to registered handlers.
// Dispatch is single-threaded; handlers for one type run in registration order.
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *Queue
}

// NewRouter creates a router attached to queue.
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types.
func (r *Router[T]) Register(h Handler[T]) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes pending events and routes them. Events pushed by handlers
// during dispatch are delivered on the next call. Returns the number of events
// consumed.
func (r *Router[T]) DispatchAll(ctx T) int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for t.
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
