// Package utils provides small generic helpers shared across the service.
package utils

import "sync"

// RingBuffer is a fixed-capacity circular buffer of T. Once full, every
// Push evicts the oldest item. Safe for concurrent use.
type RingBuffer[T any] struct {
	items []T
	head  int // next write position
	count int
	mu    sync.RWMutex
}

// NewRingBuffer allocates a ring buffer holding up to capacity items
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	return &RingBuffer[T]{
		items: make([]T, capacity),
	}
}

// Push appends an item, evicting the oldest one when the ring is full
func (r *RingBuffer[T]) Push(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = item
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

// Last returns the newest item, if any
func (r *RingBuffer[T]) Last() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	if r.count == 0 {
		return zero, false
	}
	return r.items[(r.head-1+len(r.items))%len(r.items)], true
}

// Len returns how many items the ring currently holds
func (r *RingBuffer[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}

// Cap returns the ring capacity
func (r *RingBuffer[T]) Cap() int {
	return len(r.items)
}
