package pipeline

import (
	"sync"
	"time"
)

// DefaultDLQCapacity bounds the number of parked events.
const DefaultDLQCapacity = 100

// FailedEvent is an event whose handler failed after all retries.
type FailedEvent struct {
	Event     Event
	Error     error
	Timestamp time.Time
}

// DeadLetterQueue parks failed events until they are drained, e.g. to be
// republished after the next successful run. The oldest entries are dropped
// once capacity is reached.
type DeadLetterQueue struct {
	mu       sync.Mutex
	capacity int
	failed   []FailedEvent
}

// NewDeadLetterQueue creates a queue holding up to capacity events
// (DefaultDLQCapacity when capacity <= 0).
func NewDeadLetterQueue(capacity int) *DeadLetterQueue {
	if capacity <= 0 {
		capacity = DefaultDLQCapacity
	}
	return &DeadLetterQueue{capacity: capacity}
}

// Enqueue parks a failed event.
func (q *DeadLetterQueue) Enqueue(fe FailedEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.failed) == q.capacity {
		q.failed = q.failed[1:]
	}
	q.failed = append(q.failed, fe)
}

// Drain returns the parked events, oldest first, and empties the queue.
func (q *DeadLetterQueue) Drain() []FailedEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.failed
	q.failed = nil
	return out
}

// Len returns the number of parked events.
func (q *DeadLetterQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.failed)
}
