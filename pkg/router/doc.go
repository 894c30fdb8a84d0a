// Package router binds a location provider to a base path.
//
// A Router is what route boundaries talk to: it reads the location
// relative to its base and turns relative navigation targets into
// document-root paths before handing them to the provider.
//
//	p := memory.New(memory.Config{Path: "/app/users"})
//	r := router.New(p, router.WithBase("/app"))
//
//	r.Location()          // "/users"
//	r.Navigate("/nested") // provider moves to "/app/nested"
//	r.Navigate("~/login") // provider moves to "/login"
//
// Route matches a boundary and returns the router its children use:
//
//	child, params, ok := r.Route(nest.Boundary{Pattern: "/users/:id", Nest: true})
//
// For server rendering, WithSSR swaps the provider for a static one so
// nothing subscribes or navigates.
//
// # Links
//
// Href formats a target for an anchor attribute, applying the provider's
// display transform ("#/users" for hash providers). IsActive tells whether
// a link target is the current location, exactly or as a prefix.
package router
