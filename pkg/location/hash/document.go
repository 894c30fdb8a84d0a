package hash

import (
	"strings"
	"sync"

	"github.com/boom-router/boom/internal/emitter"
)

// Document is the environment a hash provider reads and writes: the
// current URL, the state of the current history entry and the
// fragment-change signal.
type Document interface {
	// Pathname returns the path part of the current URL.
	Pathname() string

	// Search returns the query part of the current URL including "?", or
	// "" when there is none.
	Search() string

	// Hash returns the fragment including "#", or "" when there is none.
	Hash() string

	// State returns the state attached to the current history entry.
	State() any

	// ReplaceState rewrites the current history entry without creating a
	// new one. It does not fire the fragment-change signal.
	ReplaceState(state any, url string)

	// OnHashChange installs fn as a fragment-change listener and returns
	// the function that removes it.
	OnHashChange(fn func()) (remove func())
}

// MemoryDocument is an in-process Document. Its fragment-change signal is
// delivered synchronously.
type MemoryDocument struct {
	mu       sync.Mutex
	pathname string
	search   string
	hash     string
	state    any

	listeners emitter.Emitter[struct{}]
}

var _ Document = (*MemoryDocument)(nil)

// NewMemoryDocument creates a document positioned at rawURL, which holds
// a pathname with optional search and fragment ("/app?x=1#/users").
func NewMemoryDocument(rawURL string) *MemoryDocument {
	d := &MemoryDocument{}
	d.pathname, d.search, d.hash = splitURL(rawURL)
	return d
}

// Pathname returns the path part of the current URL.
func (d *MemoryDocument) Pathname() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pathname
}

// Search returns the query string, including its leading "?".
func (d *MemoryDocument) Search() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.search
}

// Hash returns the fragment, including its leading "#".
func (d *MemoryDocument) Hash() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hash
}

// State returns the state of the current entry.
func (d *MemoryDocument) State() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// ReplaceState rewrites the current entry without firing listeners.
func (d *MemoryDocument) ReplaceState(state any, url string) {
	d.mu.Lock()
	d.pathname, d.search, d.hash = splitURL(url)
	d.state = state
	d.mu.Unlock()
}

// OnHashChange registers fn for fragment changes and returns its remover.
func (d *MemoryDocument) OnHashChange(fn func()) func() {
	return d.listeners.On(func(struct{}) { fn() })
}

// SetHash changes the fragment the way a user following an in-page link
// would: the entry state is dropped and listeners fire when the fragment
// actually changed.
func (d *MemoryDocument) SetHash(hash string) {
	if hash != "" && !strings.HasPrefix(hash, "#") {
		hash = "#" + hash
	}
	if hash == "#" {
		hash = ""
	}

	d.mu.Lock()
	changed := d.hash != hash
	d.hash = hash
	d.state = nil
	d.mu.Unlock()

	if changed {
		d.listeners.Emit(struct{}{})
	}
}

// ListenerCount returns the number of installed fragment-change listeners.
func (d *MemoryDocument) ListenerCount() int {
	return d.listeners.Len()
}

// URL returns pathname, search and fragment joined together.
func (d *MemoryDocument) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pathname + d.search + d.hash
}

// splitURL splits "/path?search#hash" keeping the "?" and "#" delimiters
// on their parts. An empty pathname becomes "/".
func splitURL(raw string) (pathname, search, hash string) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw, hash = raw[:i], raw[i:]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw, search = raw[:i], raw[i:]
	}
	if search == "?" {
		search = ""
	}
	if hash == "#" {
		hash = ""
	}
	if raw == "" {
		raw = "/"
	}
	return raw, search, hash
}
