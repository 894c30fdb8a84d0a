package paths

import (
	"errors"
	"strings"
)

// Navigation target errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonicalize validates a navigation target received from an untrusted
// peer and normalizes its path part. The search part is kept verbatim.
//
// The following transformations are applied:
//   - collapse multiple slashes (/blog//post → /blog/post)
//   - drop "." segments and resolve ".." segments
//   - remove the trailing slash, except for root
//
// Full URLs, backslashes, NUL bytes, malformed escapes and ".." above root
// are rejected.
func Canonicalize(target string) (string, error) {
	if strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(target, "/") {
		return "", ErrInvalidPath
	}

	path, search := SplitSearch(target)

	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}
	if err := validateEscapes(path); err != nil {
		return "", err
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	return JoinSearch("/"+strings.Join(segments, "/"), search), nil
}

func validateEscapes(path string) error {
	for i := strings.IndexByte(path, '%'); i >= 0; {
		if _, ok := unhexAt(path, i); !ok {
			return ErrInvalidPercentEscape
		}
		next := strings.IndexByte(path[i+3:], '%')
		if next < 0 {
			break
		}
		i += 3 + next
	}
	return nil
}
