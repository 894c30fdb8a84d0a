package router

import (
	"log/slog"

	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/location/hash"
	"github.com/boom-router/boom/pkg/nest"
	"github.com/boom-router/boom/pkg/paths"
)

// Router reads and writes a provider's location under a base path.
type Router struct {
	provider location.Provider
	base     string
	composer *nest.Composer
	logger   *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithBase sets the base path. Default: "" (document root).
func WithBase(base string) Option {
	return func(r *Router) {
		r.base = base
	}
}

// WithLogger sets the logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMatcher sets the pattern matcher used by Route and IsActive.
// Default: nest.SegmentMatcher.
func WithMatcher(m nest.Matcher) Option {
	return func(r *Router) {
		r.composer = nest.New(m)
	}
}

// WithSSR replaces the provider with a static one serving path and
// search, for rendering without a live location.
func WithSSR(path, search string) Option {
	return func(r *Router) {
		r.provider = location.Static(path, search)
	}
}

// New creates a router over p. A nil p selects a hash provider bound to
// hash.DefaultDocument, which is static outside the browser.
func New(p location.Provider, opts ...Option) *Router {
	r := &Router{
		provider: p,
		composer: nest.New(nil),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.provider == nil {
		r.provider = hash.New(hash.Config{Document: hash.DefaultDocument(), Logger: r.logger})
	}
	return r
}

// Provider returns the underlying provider.
func (r *Router) Provider() location.Provider {
	return r.provider
}

// Base returns the base path.
func (r *Router) Base() string {
	return r.base
}

// Location returns the current path relative to the base, decoded. A
// location outside the base carries the escape marker.
func (r *Router) Location() string {
	return paths.DecodeSafely(paths.ToRelative(r.base, r.provider.Snapshot().Path))
}

// Search returns the current search string without "?".
func (r *Router) Search() string {
	return paths.StripQueryMarker(r.provider.Snapshot().Search)
}

// State returns the state attached to the current location.
func (r *Router) State() any {
	return r.provider.Snapshot().State
}

// Subscribe registers cb for location changes.
func (r *Router) Subscribe(cb func()) func() {
	return r.provider.Subscribe(cb)
}

// Nest returns a router for the same provider whose base is extended by
// segment.
func (r *Router) Nest(segment string) *Router {
	child := *r
	child.base = r.base + segment
	return &child
}

// Route matches b against the current location. For a nesting boundary
// the returned router's base includes the consumed prefix; otherwise it
// shares this router's base.
func (r *Router) Route(b nest.Boundary) (child *Router, params map[string]string, ok bool) {
	res, ok := r.composer.Compose(r.base, r.provider.Snapshot().Path, []nest.Boundary{b})
	if !ok {
		return nil, nil, false
	}
	f := res.Frames[0]
	return r.Nest(f.ChildBase[len(r.base):]), f.Params, true
}
