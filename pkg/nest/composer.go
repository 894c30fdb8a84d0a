package nest

import (
	"github.com/boom-router/boom/pkg/location"
	"github.com/boom-router/boom/pkg/paths"
)

// Boundary is one route boundary on the path from the root to the
// current route.
type Boundary struct {
	// Pattern is matched against the location seen by the boundary. An
	// empty pattern matches every location and consumes nothing.
	Pattern string

	// Nest makes the boundary match loosely and commit its consumed
	// prefix into the base of its descendants.
	Nest bool
}

// Frame is the outcome of one matched boundary.
type Frame struct {
	Boundary Boundary

	// Base is the base the boundary was matched under.
	Base string

	// Path is the location seen by the boundary, relative to Base.
	Path string

	// Params are the named segments captured by the pattern.
	Params map[string]string

	// ChildBase is the base handed to descendants: Base plus the consumed
	// prefix for nesting boundaries, Base otherwise.
	ChildBase string
}

// Remaining is the part of the location left for descendants.
func (f Frame) Remaining(fullPath string) string {
	return paths.ToRelative(f.ChildBase, fullPath)
}

// Resolve turns a navigation target issued by a descendant into a
// document-root path.
func (f Frame) Resolve(target string) string {
	return paths.ToAbsolute(target, f.ChildBase)
}

// Result is a composed boundary stack.
type Result struct {
	// Frames holds one frame per matched boundary, root first.
	Frames []Frame

	// Base is the base seen below the last matched boundary.
	Base string
}

// Params merges the params of every frame; deeper frames win.
func (r Result) Params() map[string]string {
	merged := map[string]string{}
	for _, f := range r.Frames {
		for k, v := range f.Params {
			merged[k] = v
		}
	}
	return merged
}

// Composer walks boundary stacks.
type Composer struct {
	matcher Matcher
}

// New creates a composer. A nil matcher selects SegmentMatcher.
func New(m Matcher) *Composer {
	if m == nil {
		m = SegmentMatcher{}
	}
	return &Composer{matcher: m}
}

// Compose matches stack against fullPath starting from base.
//
// ok is false when a boundary does not match; Result then holds the
// frames matched so far and the base below the last of them.
func (c *Composer) Compose(base, fullPath string, stack []Boundary) (res Result, ok bool) {
	res.Base = base
	for _, b := range stack {
		frame := Frame{
			Boundary:  b,
			Base:      res.Base,
			Path:      paths.ToRelative(res.Base, fullPath),
			ChildBase: res.Base,
		}

		if b.Pattern != "" {
			m, matched := c.matcher.Match(b.Pattern, frame.Path, b.Nest)
			if !matched {
				return res, false
			}
			frame.Params = m.Params
			if b.Nest {
				frame.ChildBase = res.Base + m.Consumed
			}
		}

		res.Frames = append(res.Frames, frame)
		res.Base = frame.ChildBase
	}
	return res, true
}

// Watch composes stack against the location of p once immediately and
// again after every change notification. It returns the unsubscribe
// function of the underlying subscription.
func (c *Composer) Watch(p location.Provider, base string, stack []Boundary, fn func(Result, bool)) func() {
	compose := func() {
		fn(c.Compose(base, p.Snapshot().Path, stack))
	}
	unsubscribe := p.Subscribe(compose)
	compose()
	return unsubscribe
}
