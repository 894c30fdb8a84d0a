// Package nest composes the base paths of nested route boundaries.
//
// A boundary marked Nest matches a prefix of the location it sees and
// commits the literal prefix it consumed into the base of its
// descendants. A boundary without Nest must match its whole location and
// contributes nothing to the base.
//
//	c := nest.New(nil)
//	res, ok := c.Compose("/app", "/app/users/rohitey/settings/all", []nest.Boundary{
//	    {Pattern: "/users/:name", Nest: true},
//	    {Pattern: "/settings", Nest: true},
//	    {Pattern: "/all"},
//	})
//	// ok == true, res.Base == "/app/users/rohitey/settings"
//
// Composition is recomputed from the location on every call; Watch
// recomposes on every provider notification and caches nothing across
// navigations.
package nest
