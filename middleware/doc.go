// Package middleware exposes the route guard: the gate deciding whether a
// protected view renders, redirects to login, or holds while the session is
// still being restored.
//
// # Guard
//
// [Decide] is the pure three-state decision function; [RequireSession] adapts
// it to net/http, injecting the session snapshot into the request context for
// handlers behind the gate.
//
// # Architecture boundaries
//
// The guard holds no state of its own — every decision derives from a
// [rgbim.SessionInfo] snapshot taken at request time.
//
// # What this package must NOT do
//
//   - Trigger login, logout, or refresh (it only reads).
//   - Distinguish why a session is absent.
package middleware
