// Package paths implements the path algebra used by nested routers.
//
// A nested route boundary sees the current location relative to the base
// path accumulated by its ancestors. Reads go through ToRelative, writes go
// through ToAbsolute:
//
//	paths.ToRelative("/app", "/app/users") // "/users"
//	paths.ToRelative("/app", "/other")     // "~/other"
//	paths.ToAbsolute("/nested", "/app")    // "/app/nested"
//	paths.ToAbsolute("~/absolute", "/app") // "/absolute"
//
// The "~" prefix is the escape marker: a path carrying it lies outside the
// current base and must be treated as document-root absolute. Inside Go
// code the same information is carried by Target, which serializes to the
// marker convention only when it is turned back into a string.
//
// Every function in this package is pure and safe for concurrent use.
package paths
