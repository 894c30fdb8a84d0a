package hash

import (
	"log/slog"
	"strings"

	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/paths"
)

// Config configures a hash provider.
type Config struct {
	// Document is the environment to bind to. Nil selects the static
	// server-rendering mode.
	Document Document

	// Registry shares the fragment-change listener between providers.
	// Default: RegistryFor(Document).
	Registry *Registry

	// SSRPath is the location served when Document is nil.
	// Default: "/".
	SSRPath string

	// SSRSearch is the search served when Document is nil.
	SSRSearch string

	// Logger receives debug records for every navigation.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Provider is a location provider backed by the URL fragment.
type Provider struct {
	doc      Document
	registry *Registry
	static   location.Location
	logger   *slog.Logger
}

var (
	_ location.Provider = (*Provider)(nil)
	_ location.Hrefs    = (*Provider)(nil)
)

// New creates a hash provider.
func New(cfg Config) *Provider {
	if cfg.SSRPath == "" {
		cfg.SSRPath = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	p := &Provider{
		doc:    cfg.Document,
		logger: cfg.Logger,
		static: location.Location{
			Path:   cfg.SSRPath,
			Search: paths.StripQueryMarker(cfg.SSRSearch),
		},
	}
	if p.doc != nil {
		p.registry = cfg.Registry
		if p.registry == nil {
			p.registry = RegistryFor(p.doc)
		}
	}
	return p
}

// Static reports whether the provider serves the server-rendering
// location.
func (p *Provider) Static() bool {
	return p.doc == nil
}

// Subscribe registers cb for location changes.
func (p *Provider) Subscribe(cb func()) func() {
	if p.doc == nil {
		return location.Noop
	}
	return p.registry.Subscribe(cb)
}

// Snapshot returns the location held in the fragment.
func (p *Provider) Snapshot() location.Location {
	if p.doc == nil {
		return p.static
	}
	return location.Location{
		Path:   CurrentPath(p.doc.Hash()),
		Search: paths.StripQueryMarker(p.doc.Search()),
		State:  p.doc.State(),
	}
}

// Navigate rewrites the fragment to "#/" + target, keeping pathname and
// search, and replaces the current history entry. Subscribers of every
// provider bound to the same Document are notified when the path read
// from the fragment changed, so "" and "#/" count as the same location.
// WithReplace is implied.
func (p *Provider) Navigate(target string, opts ...location.NavigateOption) {
	if p.doc == nil {
		return
	}
	o := location.ApplyOptions(opts...)

	hash := "#/" + trimHash(target)
	changed := CurrentPath(hash) != CurrentPath(p.doc.Hash())

	p.doc.ReplaceState(o.State, p.doc.Pathname()+p.doc.Search()+hash)

	p.logger.Debug("hash location navigate",
		"to", target,
		"changed", changed,
		"subscribers", p.registry.Len())

	if changed {
		p.registry.Notify()
	}
}

// Href formats path for an anchor attribute.
func (p *Provider) Href(path string) string {
	return Hrefs(path)
}

// Hrefs prefixes path with "#". It is a display helper only; Navigate
// does its own normalization.
func Hrefs(path string) string {
	return "#" + path
}

// CurrentPath turns a fragment into a path: a leading "#" and a leading
// "/" are dropped and a single "/" is prefixed. "#foo", "#/foo" and
// "/foo" all yield "/foo".
func CurrentPath(hash string) string {
	return "/" + trimHash(hash)
}

func trimHash(s string) string {
	s = strings.TrimPrefix(s, "#")
	return strings.TrimPrefix(s, "/")
}
