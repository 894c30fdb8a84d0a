package nest

import (
	"strings"

	"github.com/boom-router/boom/pkg/paths"
)

// Match is the result of matching a pattern against a path.
type Match struct {
	// Params holds the decoded values of named segments.
	Params map[string]string

	// Consumed is the literal prefix of the path covered by the pattern.
	Consumed string
}

// Matcher matches route patterns. When loose is set, the pattern only has
// to match a prefix of path, ending on a segment boundary.
type Matcher interface {
	Match(pattern, path string, loose bool) (Match, bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(pattern, path string, loose bool) (Match, bool)

// Match calls f.
func (f MatcherFunc) Match(pattern, path string, loose bool) (Match, bool) {
	return f(pattern, path, loose)
}

// SegmentMatcher matches slash-separated patterns:
//
//	/users         literal, compared case-insensitively
//	/users/:id     named segment
//	/:version?     optional named segment
//	/files/*       wildcard over the remaining segments, stored as "*"
//	/files/:rest*  named wildcard
//
// Paths that do not start with "/", such as escaped out-of-base paths,
// never match.
type SegmentMatcher struct{}

// segmentKind classifies a pattern segment.
type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segParam
	segWildcard
)

type patternSegment struct {
	kind     segmentKind
	value    string // literal text or parameter name
	optional bool
}

// pathSegment is a path segment with the offset of its end in the path.
type pathSegment struct {
	value string
	end   int
}

// Match implements Matcher.
func (SegmentMatcher) Match(pattern, path string, loose bool) (Match, bool) {
	if !strings.HasPrefix(path, "/") {
		return Match{}, false
	}

	m := &matching{
		pattern: parsePattern(pattern),
		path:    splitSegments(path),
		params:  map[string]string{},
		loose:   loose,
	}
	end, ok := m.match(0, 0)
	if !ok {
		return Match{}, false
	}
	return Match{Params: m.params, Consumed: path[:end]}, true
}

type matching struct {
	pattern []patternSegment
	path    []pathSegment
	params  map[string]string
	loose   bool
}

// match matches pattern[pi:] against path[si:] and returns the end offset
// of the consumed prefix.
func (m *matching) match(pi, si int) (int, bool) {
	if pi == len(m.pattern) {
		if !m.loose && si != len(m.path) {
			return 0, false
		}
		return m.offset(si), true
	}

	seg := m.pattern[pi]
	switch seg.kind {
	case segLiteral:
		if si < len(m.path) && strings.EqualFold(m.path[si].value, seg.value) {
			return m.match(pi+1, si+1)
		}
		return 0, false

	case segParam:
		if si < len(m.path) {
			m.params[seg.value] = paths.DecodeSafely(m.path[si].value)
			if end, ok := m.match(pi+1, si+1); ok {
				return end, true
			}
			// Backtrack on failure
			delete(m.params, seg.value)
		}
		if seg.optional {
			return m.match(pi+1, si)
		}
		return 0, false

	default:
		for k := len(m.path); k >= si; k-- {
			if k == si && !seg.optional {
				break
			}
			values := make([]string, 0, k-si)
			for _, s := range m.path[si:k] {
				values = append(values, s.value)
			}
			m.params[seg.value] = paths.DecodeSafely(strings.Join(values, "/"))
			if end, ok := m.match(pi+1, k); ok {
				return end, true
			}
		}
		delete(m.params, seg.value)
		return 0, false
	}
}

// offset returns the end of the n-th path segment, 0 for none.
func (m *matching) offset(n int) int {
	if n == 0 {
		return 0
	}
	return m.path[n-1].end
}

// parsePattern splits a pattern into segments.
func parsePattern(pattern string) []patternSegment {
	var segs []patternSegment
	for _, raw := range splitPath(pattern) {
		switch {
		case raw == "*":
			segs = append(segs, patternSegment{kind: segWildcard, value: "*", optional: true})
		case strings.HasPrefix(raw, ":"):
			name := raw[1:]
			switch {
			case strings.HasSuffix(name, "*"):
				segs = append(segs, patternSegment{kind: segWildcard, value: name[:len(name)-1], optional: true})
			case strings.HasSuffix(name, "+"):
				segs = append(segs, patternSegment{kind: segWildcard, value: name[:len(name)-1]})
			case strings.HasSuffix(name, "?"):
				segs = append(segs, patternSegment{kind: segParam, value: name[:len(name)-1], optional: true})
			default:
				segs = append(segs, patternSegment{kind: segParam, value: name})
			}
		default:
			segs = append(segs, patternSegment{kind: segLiteral, value: raw})
		}
	}
	return segs
}

// splitPath splits a path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// splitSegments splits a path that starts with "/" into segments,
// remembering where each one ends. A trailing slash is ignored.
func splitSegments(path string) []pathSegment {
	var segs []pathSegment
	start := 1
	for i := 1; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segs = append(segs, pathSegment{value: path[start:i], end: i})
			}
			start = i + 1
		}
	}
	return segs
}
