package middleware

import "github.com/boom-router/boom/pkg/location"

// Middleware decorates a provider.
type Middleware func(location.Provider) location.Provider

// Chain applies middleware to p in order; the first one ends up
// innermost.
func Chain(p location.Provider, mw ...Middleware) location.Provider {
	for _, m := range mw {
		p = m(p)
	}
	return p
}

// Wrapper is implemented by providers returned from a Middleware.
type Wrapper interface {
	Unwrap() location.Provider
}

// Unwrap peels every middleware layer off p.
func Unwrap(p location.Provider) location.Provider {
	for {
		w, ok := p.(Wrapper)
		if !ok {
			return p
		}
		p = w.Unwrap()
	}
}
