// Package hash implements a location provider backed by the URL fragment.
//
// The fragment ("#/users/42") is the source of truth for the path; the
// document's pathname and search are left untouched. All providers bound
// to the same Document share one Registry, which installs a single
// fragment-change listener on the first subscription and removes it when
// the last subscriber leaves.
//
// In a js/wasm build DefaultDocument returns the browser's window; in any
// other build it returns nil and providers fall back to the static
// server-rendering path given in Config.
package hash
