// Package bridge exposes a router's location over HTTP and WebSocket.
//
// A bridge lets out-of-process tools watch and drive a location provider,
// for example a test harness steering an embedded memory provider:
//
//	GET  /location   current location as JSON
//	POST /navigate   {"to": "/users/1", "replace": false}
//	GET  /history    History Log of a recording provider (404 otherwise)
//	POST /reset      reset a recording provider (404 otherwise)
//	GET  /ws         location frames on every change; accepts navigate frames
//
// Targets are resolved against the router base. A target starting with
// "~" bypasses the base. Targets are canonicalized before use and
// anything that is not a rooted path is rejected.
//
// Navigations from every connection are serialized, so the provider only
// ever sees one Navigate at a time.
package bridge
