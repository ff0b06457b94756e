// Package event is the storefront's in-process pub/sub. Controllers fire
// domain events ("checkout.completed" is the one that matters today) and
// listeners registered at boot react to them, which keeps side work like
// receipt recording out of the request path.
//
// Listeners are registered once at startup and never removed; there is no
// unsubscribe. The payload type is part of each event's contract and
// listeners assert it themselves.
package event

import "sync"

// Handler reacts to a fired event.
type Handler func(payload interface{})

// registry is the process-wide listener table.
type registry struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
}

var reg = &registry{listeners: map[string][]Handler{}}

func (r *registry) add(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[name] = append(r.listeners[name], h)
}

// snapshot copies the listener list so a slow handler never holds the lock.
func (r *registry) snapshot(name string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Handler, len(r.listeners[name]))
	copy(out, r.listeners[name])
	return out
}

// Listen subscribes h to the named event.
func Listen(name string, h Handler) {
	reg.add(name, h)
}

// Fire runs every listener for the event in registration order, on the
// caller's goroutine, and returns after the last one finishes.
func Fire(name string, payload interface{}) {
	for _, h := range reg.snapshot(name) {
		h(payload)
	}
}

// FireAsync runs each listener on its own goroutine and returns without
// waiting. Checkout uses this so the capture response is never held up by
// the receipt write.
func FireAsync(name string, payload interface{}) {
	for _, h := range reg.snapshot(name) {
		go h(payload)
	}
}

// Flush drops every registration. Tests use it to isolate listeners.
func Flush() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.listeners = map[string][]Handler{}
}
