package router

import (
	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/paths"
)

// Navigate resolves target against the base and hands it to the
// provider. Targets carrying the escape marker bypass the base.
func (r *Router) Navigate(target string, opts ...location.NavigateOption) {
	to := paths.ToAbsolute(target, r.base)
	r.logger.Debug("router navigate", "base", r.base, "target", target, "to", to)
	r.provider.Navigate(to, opts...)
}

// Redirect navigates to target, replacing the current history entry.
// It has no effect on static providers, so a redirect rendered on the
// server only takes effect on the client.
func (r *Router) Redirect(target string, opts ...location.NavigateOption) {
	r.Navigate(target, append(opts, location.WithReplace())...)
}
