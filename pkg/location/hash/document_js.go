//go:build js && wasm

package hash

import (
	"sync"
	"syscall/js"
)

// BrowserDocument binds to the global window of a browser.
//
// Go state values cannot cross into history.state, so the state attached
// by ReplaceState is kept on the Go side and dropped whenever the browser
// reports a fragment change it did not get from ReplaceState.
type BrowserDocument struct {
	window js.Value

	mu    sync.Mutex
	state any
}

// NewBrowserDocument returns a document bound to js.Global().
func NewBrowserDocument() *BrowserDocument {
	return &BrowserDocument{window: js.Global()}
}

// DefaultDocument returns the browser document.
func DefaultDocument() Document {
	return browserDocument
}

var browserDocument = NewBrowserDocument()

func (d *BrowserDocument) location() js.Value {
	return d.window.Get("location")
}

func (d *BrowserDocument) Pathname() string {
	return d.location().Get("pathname").String()
}

func (d *BrowserDocument) Search() string {
	return d.location().Get("search").String()
}

func (d *BrowserDocument) Hash() string {
	return d.location().Get("hash").String()
}

func (d *BrowserDocument) State() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *BrowserDocument) ReplaceState(state any, url string) {
	d.mu.Lock()
	d.state = state
	d.mu.Unlock()
	d.window.Get("history").Call("replaceState", js.Null(), "", url)
}

func (d *BrowserDocument) OnHashChange(fn func()) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		d.mu.Lock()
		d.state = nil
		d.mu.Unlock()
		fn()
		return nil
	})
	d.window.Call("addEventListener", "hashchange", cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			d.window.Call("removeEventListener", "hashchange", cb)
			cb.Release()
		})
	}
}
