package memory

import (
	"iter"
	"slices"
	"sync"
)

// History is the ordered log of navigation targets, oldest first.
//
// Holders observe growth in place: the log owned by a provider is never
// swapped for another one. Only the owning provider mutates it.
type History struct {
	mu      sync.RWMutex
	entries []string
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// At returns the i-th entry. It panics if i is out of range.
func (h *History) At(i int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[i]
}

// Last returns the newest entry.
func (h *History) Last() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy of the log.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.entries)
}

// All iterates over a copy of the log taken when iteration starts.
func (h *History) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, e := range h.Entries() {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (h *History) push(target string) {
	h.mu.Lock()
	h.entries = append(h.entries, target)
	h.mu.Unlock()
}

// replaceLast overwrites the newest entry, or appends to an empty log.
func (h *History) replaceLast(target string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		h.entries = append(h.entries, target)
		return
	}
	h.entries[len(h.entries)-1] = target
}

func (h *History) clear() {
	h.mu.Lock()
	h.entries = h.entries[:0]
	h.mu.Unlock()
}
