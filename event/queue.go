package event

import "sync"

// Queue is a FIFO of pending events.
// Push is safe from multiple goroutines; Consume is called by the single
// dispatching loop.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Consume returns all pending events in FIFO order and empties the queue.
func (q *Queue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the pending event count.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
