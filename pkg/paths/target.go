package paths

// EscapeMarker prefixes paths that escape the current base.
const EscapeMarker = '~'

// Kind tells how a Target relates to the base it was computed against.
type Kind uint8

const (
	// Relative targets are resolved against the base.
	Relative Kind = iota

	// Absolute targets are already document-root paths.
	Absolute
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Target is a path tagged with its relation to a base.
type Target struct {
	Kind Kind
	Path string
}

// Resolve computes the target for path as seen from base.
func Resolve(base, path string) Target {
	if !hasPrefixFold(path, base) {
		return Target{Kind: Absolute, Path: path}
	}
	rest := path[len(base):]
	if rest == "" {
		rest = "/"
	}
	return Target{Kind: Relative, Path: rest}
}

// ParseTarget reads the escape marker convention.
func ParseTarget(s string) Target {
	if len(s) > 0 && s[0] == EscapeMarker {
		return Target{Kind: Absolute, Path: s[1:]}
	}
	return Target{Kind: Relative, Path: s}
}

// String serializes the target using the escape marker convention.
func (t Target) String() string {
	if t.Kind == Absolute {
		return string(EscapeMarker) + t.Path
	}
	return t.Path
}

// Against returns the document-root path of t inside base.
func (t Target) Against(base string) string {
	if t.Kind == Absolute {
		return t.Path
	}
	return base + t.Path
}

// IsAbsolute reports whether t escapes its base.
func (t Target) IsAbsolute() bool {
	return t.Kind == Absolute
}
