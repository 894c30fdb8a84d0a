package hash

import (
	"log/slog"
	"sync"

	"github.com/boom-router/boom/internal/emitter"
)

// Registry fans the fragment-change signal of one Document out to every
// subscribed provider.
//
// The Document listener is installed by the first Subscribe and removed
// when the last subscription is cancelled, so no listener outlives the
// routers using it.
type Registry struct {
	doc    Document
	logger *slog.Logger

	// shared is set for registries handed out by RegistryFor.
	shared bool

	mu     sync.Mutex
	subs   emitter.Emitter[struct{}]
	remove func()
}

// NewRegistry creates a registry for doc. A nil logger means
// slog.Default().
func NewRegistry(doc Document, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{doc: doc, logger: logger}
}

// registries holds the shared registry of every Document with live
// subscribers. Lock order: registriesMu before Registry.mu.
var (
	registriesMu sync.Mutex
	registries   = map[Document]*Registry{}
)

// RegistryFor returns the process-wide registry of doc, creating it on
// first use. The entry is dropped when its last subscriber leaves; a
// registry obtained earlier keeps working and re-registers itself on its
// next Subscribe.
func RegistryFor(doc Document) *Registry {
	registriesMu.Lock()
	defer registriesMu.Unlock()
	return sharedLocked(doc, nil)
}

// sharedLocked returns the registered registry of doc, registering r (or
// a new registry when r is nil) if there is none.
func sharedLocked(doc Document, r *Registry) *Registry {
	if cur, ok := registries[doc]; ok {
		return cur
	}
	if r == nil {
		r = NewRegistry(doc, nil)
		r.shared = true
	}
	registries[doc] = r
	return r
}

// current resolves a shared registry to the one registered for its
// Document.
func (r *Registry) current() *Registry {
	if !r.shared {
		return r
	}
	registriesMu.Lock()
	defer registriesMu.Unlock()
	if cur, ok := registries[r.doc]; ok {
		return cur
	}
	return r
}

// Subscribe registers cb for fragment changes.
func (r *Registry) Subscribe(cb func()) func() {
	if !r.shared {
		return r.subscribe(cb)
	}
	registriesMu.Lock()
	defer registriesMu.Unlock()
	return sharedLocked(r.doc, r).subscribe(cb)
}

func (r *Registry) subscribe(cb func()) func() {
	r.mu.Lock()
	off := r.subs.On(func(struct{}) { cb() })
	if r.remove == nil {
		r.remove = r.doc.OnHashChange(r.Notify)
		r.logger.Debug("hash listener installed")
	}
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.unsubscribe(off) })
	}
}

func (r *Registry) unsubscribe(off func()) {
	if r.shared {
		registriesMu.Lock()
		defer registriesMu.Unlock()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	off()
	if r.subs.Len() == 0 && r.remove != nil {
		r.remove()
		r.remove = nil
		r.logger.Debug("hash listener removed")
		if r.shared && registries[r.doc] == r {
			delete(registries, r.doc)
		}
	}
}

// Notify calls every subscriber, in subscription order.
func (r *Registry) Notify() {
	r.current().subs.Emit(struct{}{})
}

// Active reports whether the Document listener is installed.
func (r *Registry) Active() bool {
	cur := r.current()
	cur.mu.Lock()
	defer cur.mu.Unlock()
	return cur.remove != nil
}

// Len returns the number of subscribers.
func (r *Registry) Len() int {
	return r.current().subs.Len()
}
