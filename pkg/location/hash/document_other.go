//go:build !(js && wasm)

package hash

// DefaultDocument returns nil: outside the browser there is no ambient
// document, so providers serve their static server-rendering location.
func DefaultDocument() Document {
	return nil
}
