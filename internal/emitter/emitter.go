// Package emitter provides the ordered callback registry shared by the
// location providers.
package emitter

import "sync"

// Emitter fans values out to registered handlers in registration order.
//
// Registering the same handler twice creates two independent
// registrations. Emit iterates over a snapshot of the handlers, so a
// handler added while an emission is running is not called for it.
type Emitter[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []entry[T]
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// On registers fn and returns the function that removes it. The returned
// function may be called any number of times.
func (e *Emitter[T]) On(fn func(T)) (off func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, entry[T]{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.off(id) })
	}
}

func (e *Emitter[T]) off(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, h := range e.handlers {
		if h.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every registered handler with v, synchronously.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	handlers := e.handlers
	e.mu.Unlock()

	for _, h := range handlers {
		h.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
