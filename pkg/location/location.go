package location

// Location is a point in the routed application.
type Location struct {
	// Path always starts with "/".
	Path string

	// Search is the query string without the leading "?".
	Search string

	// State is the opaque value passed with the navigation that produced
	// this location.
	State any
}

// Equal reports whether two locations have the same path and search.
// State is opaque and not compared.
func (l Location) Equal(other Location) bool {
	return l.Path == other.Path && l.Search == other.Search
}

// String returns the path followed by "?search" when a search is set.
func (l Location) String() string {
	if l.Search == "" {
		return l.Path
	}
	return l.Path + "?" + l.Search
}

// Provider is a pluggable source of the current location.
type Provider interface {
	// Subscribe registers cb to be called after every location change.
	// The returned function removes exactly this registration.
	Subscribe(cb func()) (unsubscribe func())

	// Snapshot returns the current location.
	Snapshot() Location

	// Navigate moves to target and notifies subscribers before returning.
	Navigate(target string, opts ...NavigateOption)
}

// Hrefs is implemented by providers whose anchors need a different form
// than the navigation target, such as the hash provider.
type Hrefs interface {
	Href(path string) string
}

// Href formats path for an anchor attribute using p's Hrefs
// implementation, if it has one.
func Href(p Provider, path string) string {
	if h, ok := p.(Hrefs); ok {
		return h.Href(path)
	}
	return path
}

// Noop is the unsubscribe function returned by providers that never
// notify.
func Noop() {}
