// Package queue provides the bounded write-behind queue used by storage
// backends to batch inserts.
package queue

import (
	"sync"
)

// Queue is a generic thread-safe FIFO queue. A queue with a positive
// capacity drops its oldest items when full.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	dropped  int
}

// New creates a new empty, unbounded queue.
func New[T any]() *Queue[T] {
	return NewBounded[T](0)
}

// NewBounded creates a queue holding at most capacity items. A capacity of
// zero or less is unbounded.
func NewBounded[T any](capacity int) *Queue[T] {
	return &Queue[T]{
		items:    make([]T, 0),
		capacity: capacity,
	}
}

// Push appends items to the queue.
func (q *Queue[T]) Push(items ...T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
	q.trim()
}

// Requeue puts items back at the head of the queue, ahead of anything
// pushed since they were taken. Used after a failed write.
func (q *Queue[T]) Requeue(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	merged := make([]T, 0, len(items)+len(q.items))
	merged = append(merged, items...)
	q.items = append(merged, q.items...)
	q.trim()
}

// trim drops the oldest items beyond capacity. Caller holds mu.
func (q *Queue[T]) trim() {
	if q.capacity <= 0 || len(q.items) <= q.capacity {
		return
	}
	over := len(q.items) - q.capacity
	q.dropped += over
	q.items = append(q.items[:0:0], q.items[over:]...)
}

// Empty returns true if the queue has no items.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped returns how many items were discarded because the queue was full.
func (q *Queue[T]) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// GetAndEmpty returns all items and clears the queue.
func (q *Queue[T]) GetAndEmpty() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := q.items
	q.items = make([]T, 0, cap(q.items))
	return result
}
