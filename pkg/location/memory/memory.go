// Package memory implements an in-process location provider.
//
// The provider keeps its current location in a private value, which makes
// it the provider of choice for tests and for embedding a router where no
// browser location exists. With Record enabled it also keeps a History Log
// of every navigation and can be reset to its initial path:
//
//	p := memory.New(memory.Config{Path: "/test", Record: true})
//	p.Navigate("/a")
//	p.Navigate("/b", location.WithReplace())
//
//	rec, _ := p.Recorder()
//	rec.History().Entries() // ["/test", "/b"]
package memory

import (
	"log/slog"
	"sync"

	"github.com/boom-router/boom/internal/emitter"
	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/paths"
)

// Config configures a memory provider.
type Config struct {
	// Path is the initial location, including an optional "?search".
	// Default: "/".
	Path string

	// Static disables navigation entirely.
	Static bool

	// Record keeps a History Log and enables Reset. It is ignored when
	// Static is set.
	Record bool

	// Logger receives debug records for every navigation.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Event is delivered to OnNavigate handlers after every navigation.
type Event struct {
	// Target is the navigation target exactly as passed to Navigate.
	Target string

	// Location is the location the provider moved to.
	Location location.Location

	// Replace is true for replacing navigations.
	Replace bool
}

// Provider is an in-memory location provider. It is safe for concurrent
// use, though navigations are expected to come from a single goroutine.
type Provider struct {
	initial string
	static  bool
	logger  *slog.Logger

	mu      sync.RWMutex
	current location.Location

	history  *History
	recorder *Recorder
	events   emitter.Emitter[Event]
}

var _ location.Provider = (*Provider)(nil)

// New creates a memory provider.
func New(cfg Config) *Provider {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	p := &Provider{
		initial: cfg.Path,
		static:  cfg.Static,
		logger:  cfg.Logger,
		current: parseTarget(cfg.Path, nil),
	}

	// A static provider never moves, so it has nothing to record.
	if cfg.Record && !cfg.Static {
		p.history = &History{entries: []string{cfg.Path}}
		p.recorder = &Recorder{p: p}
	}

	return p
}

// Subscribe registers cb to run after every navigation.
func (p *Provider) Subscribe(cb func()) func() {
	return p.events.On(func(Event) { cb() })
}

// OnNavigate registers fn to receive the event of every navigation. It
// shares the notification order with Subscribe.
func (p *Provider) OnNavigate(fn func(Event)) func() {
	return p.events.On(fn)
}

// Snapshot returns the current location.
func (p *Provider) Snapshot() location.Location {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Navigate moves to target.
//
// The current location always moves; the History Log is only updated when
// recording. Navigate is a no-op on a static provider.
func (p *Provider) Navigate(target string, opts ...location.NavigateOption) {
	if p.static {
		return
	}
	o := location.ApplyOptions(opts...)

	if p.history != nil {
		if o.Replace {
			p.history.replaceLast(target)
		} else {
			p.history.push(target)
		}
	}

	loc := parseTarget(target, o.State)

	p.mu.Lock()
	p.current = loc
	p.mu.Unlock()

	p.logger.Debug("memory location navigate",
		"to", target,
		"replace", o.Replace,
		"subscribers", p.events.Len())

	p.events.Emit(Event{Target: target, Location: loc, Replace: o.Replace})
}

// Recorder returns the recording controls. ok is false when the provider
// was created without Record.
func (p *Provider) Recorder() (rec *Recorder, ok bool) {
	return p.recorder, p.recorder != nil
}

// Static reports whether navigation is disabled.
func (p *Provider) Static() bool {
	return p.static
}

// Initial returns the path the provider was created with.
func (p *Provider) Initial() string {
	return p.initial
}

func parseTarget(target string, state any) location.Location {
	path, search := paths.SplitSearch(target)
	return location.Location{Path: path, Search: search, State: state}
}

// Recorder gives access to the History Log of a recording provider.
type Recorder struct {
	p *Provider
}

// History returns the History Log. The same value is returned for the
// whole lifetime of the provider.
func (r *Recorder) History() *History {
	return r.p.history
}

// Reset empties the History Log in place and navigates back to the
// initial path, which re-seeds the log with a single entry and notifies
// subscribers.
func (r *Recorder) Reset() {
	r.p.history.clear()
	r.p.Navigate(r.p.Initial())
}
