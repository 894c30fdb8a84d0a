// Package location defines the Location Provider contract shared by every
// source of "current location".
//
// A Provider exposes three capabilities:
//
//	unsubscribe := p.Subscribe(func() { render(p.Snapshot()) })
//	loc := p.Snapshot()
//	p.Navigate("/users/42", location.WithReplace())
//
// Navigate updates the snapshot and notifies every subscriber, in
// registration order, before it returns. Subscriptions are the only thing
// that can be cancelled; the unsubscribe function is idempotent.
//
// Concrete providers live in sub-packages: memory (in-process, optionally
// recording history) and hash (URL fragment backed). Static builds the
// provider used for server rendering, where there is nothing to observe.
package location
