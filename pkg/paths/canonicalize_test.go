package paths

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "root", input: "/", want: "/"},
		{name: "trailing slash", input: "/about/", want: "/about"},
		{name: "collapse slashes", input: "/blog//post", want: "/blog/post"},
		{name: "dots", input: "/a/./b/../c", want: "/a/c"},
		{name: "search preserved", input: "/a//b?x=1&y=/z", want: "/a/b?x=1&y=/z"},
		{name: "valid escape", input: "/a%20b", want: "/a%20b"},
		{name: "escapes root", input: "/../secret", wantErr: ErrPathEscapesRoot},
		{name: "full url", input: "https://evil.example/", wantErr: ErrInvalidPath},
		{name: "protocol relative", input: "//evil.example", wantErr: ErrInvalidPath},
		{name: "relative", input: "about", wantErr: ErrInvalidPath},
		{name: "backslash", input: "/a\\b", wantErr: ErrBackslashInPath},
		{name: "encoded nul", input: "/a%00", wantErr: ErrNullByteInPath},
		{name: "bad escape", input: "/a%zz", wantErr: ErrInvalidPercentEscape},
		{name: "truncated escape", input: "/a%2", wantErr: ErrInvalidPercentEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Canonicalize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
