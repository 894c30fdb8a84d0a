package paths

import "strings"

// ToRelative returns path relative to base.
//
// Base matching is case-insensitive. A path outside of base is returned
// absolute, prefixed with the escape marker. Stripping the whole path
// yields "/", the base's own root.
func ToRelative(base, path string) string {
	return Resolve(base, path).String()
}

// ToAbsolute turns a target issued inside base into a document-root path.
// A target carrying the escape marker is returned without the marker and
// base is ignored.
func ToAbsolute(target, base string) string {
	return ParseTarget(target).Against(base)
}

// StripQueryMarker removes a single leading "?".
func StripQueryMarker(s string) string {
	return strings.TrimPrefix(s, "?")
}

// SplitSearch splits a navigation target into its path and search parts.
// The search is returned without the leading "?".
func SplitSearch(target string) (path, search string) {
	path, search, _ = strings.Cut(target, "?")
	return path, search
}

// JoinSearch is the inverse of SplitSearch. An empty search yields path
// unchanged.
func JoinSearch(path, search string) string {
	search = StripQueryMarker(search)
	if search == "" {
		return path
	}
	return path + "?" + search
}

// hasPrefixFold reports whether s begins with prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
