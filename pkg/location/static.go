package location

import "github.com/boom-router/boom/pkg/paths"

// static serves a fixed location and never changes.
type static struct {
	loc Location
}

// Static returns the provider used when there is no live location source,
// such as during server rendering. Snapshot always returns path and
// search; Subscribe and Navigate do nothing.
func Static(path, search string) Provider {
	if path == "" {
		path = "/"
	}
	return static{loc: Location{Path: path, Search: paths.StripQueryMarker(search)}}
}

func (s static) Subscribe(func()) func() { return Noop }

func (s static) Snapshot() Location { return s.loc }

func (s static) Navigate(string, ...NavigateOption) {}

// IsStatic reports whether p was built by Static.
func IsStatic(p Provider) bool {
	_, ok := p.(static)
	return ok
}
