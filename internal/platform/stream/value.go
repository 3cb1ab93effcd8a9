// Package stream holds the small observable primitives the engine components use
// to publish snapshots: a latest-value holder with conflating subscriptions, a
// ticker source and "latest of N" joins.
package stream

import (
	"context"
	"sync"
)

// Value holds the latest snapshot of T and fans it out to subscribers.
// Subscribers always see the most recent value; intermediate values may be
// skipped when a subscriber is slow.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[int]chan T
	nextID  int
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, subs: make(map[int]chan T)}
}

// Get returns the latest value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the latest value and notifies subscribers in order.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = next
	for _, ch := range v.subs {
		offer(ch, next)
	}
}

// Update applies fn to the current value under the write lock.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = fn(v.current)
	for _, ch := range v.subs {
		offer(ch, v.current)
	}
	return v.current
}

// Subscribe emits the current value immediately and every later value until
// ctx is done, after which the channel is closed.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = ch
	ch <- v.current
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, id)
		close(ch)
		v.mu.Unlock()
	}()
	return ch
}

// offer replaces whatever is buffered in ch with next. Callers hold the write
// lock, so they are the only sender and the send after draining cannot block.
func offer[T any](ch chan T, next T) {
	select {
	case ch <- next:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- next
}
