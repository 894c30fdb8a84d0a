package paths

import (
	"strings"
	"unicode/utf8"
)

// reserved lists the characters whose escapes survive URI decoding.
const reserved = ";/?:@&=+$,#"

// DecodeSafely decodes percent-escapes the way a browser decodes a URI.
//
// Escapes of reserved characters are kept as-is and multi-byte escapes
// must form valid UTF-8. Malformed input is never an error: the original
// string is returned untouched.
func DecodeSafely(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	decoded, ok := decodeURI(s)
	if !ok {
		return s
	}
	return decoded
}

func decodeURI(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}

		c, ok := unhexAt(s, i)
		if !ok {
			return "", false
		}

		if c < utf8.RuneSelf {
			if strings.IndexByte(reserved, c) >= 0 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}

		n := sequenceLen(c)
		if n == 0 {
			return "", false
		}
		var buf [utf8.UTFMax]byte
		buf[0] = c
		j := i + 3
		for k := 1; k < n; k++ {
			cont, ok := unhexAt(s, j)
			if !ok {
				return "", false
			}
			buf[k] = cont
			j += 3
		}
		if !utf8.Valid(buf[:n]) {
			return "", false
		}
		b.Write(buf[:n])
		i = j
	}

	return b.String(), true
}

// unhexAt decodes the escape "%XX" starting at s[i].
func unhexAt(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := unhex(s[i+1])
	lo, ok2 := unhex(s[i+2])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// sequenceLen returns the UTF-8 sequence length announced by a leading
// byte, or 0 for bytes that cannot start a sequence.
func sequenceLen(c byte) int {
	switch {
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}
