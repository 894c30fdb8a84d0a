package router

import (
	"strings"

	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/paths"
)

// Href returns the anchor attribute value for target.
func (r *Router) Href(target string) string {
	return location.Href(r.provider, paths.ToAbsolute(target, r.base))
}

// IsActive reports whether the current location is target. With exact
// unset, target only has to be a prefix of the location ending on a
// segment boundary. Comparison ignores case, like base matching.
func (r *Router) IsActive(target string, exact bool) bool {
	to := strings.TrimSuffix(paths.ToAbsolute(target, r.base), "/")
	rest := paths.Resolve(to, r.provider.Snapshot().Path)
	if rest.IsAbsolute() {
		return false
	}
	if exact {
		return rest.Path == "/"
	}
	return strings.HasPrefix(rest.Path, "/")
}
