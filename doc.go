// Package rgbim manages the client-held session for the RGBim account service:
// login, durable token persistence, profile synchronization, logout, and the
// state the route guard consumes.
//
// The package is designed for concurrent callers: Manager methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
// There is deliberately no deduplication of overlapping calls — two concurrent
// Login invocations race and the last writer wins, matching the behavior of a
// double-submitted form.
//
// # Architecture boundaries
//
// rgbim is the public surface. It exposes [Manager], [Builder], [Config], and
// value types (User, SessionInfo, TokenPair). Flow orchestration, audit
// dispatch, and metric storage live under internal/ and are never exported.
// Durable storage lives in the session package, the HTTP contract in backend,
// and the HTTP guard in middleware.
//
// # What this package must NOT do
//
//   - Implement a refresh-token rotation protocol. The refresh token is
//     persisted alongside the access token but never sent anywhere; token
//     expiry is surfaced via [Manager.Snapshot] and acting on it is the
//     caller's decision.
//   - Clear a cached session because a network call failed. Only Logout and a
//     failed Login precondition may leave the user logged out.
//   - Write to durable storage from anywhere except the Manager.
package rgbim
