// Package errors provides coded, actionable errors for boom.
//
// Every error that reaches a user through the CLI or the HTTP bridge
// carries a code (e.g. "E201") that maps to a short message, a longer
// explanation and, for bridge errors, the HTTP status to answer with.
//
// # Error Codes
//
//   - E1xx: configuration (boom.json loading and validation)
//   - E2xx: bridge (HTTP and WebSocket requests)
//   - E3xx: command line usage
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail(`target "/a/../../b" climbs above the root`).
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// ERROR E202: Invalid navigation target
//	//
//	//   target "/a/../../b" climbs above the root
//
// Codes are stable; new ones are appended to the registry and never
// renumbered.
package errors
