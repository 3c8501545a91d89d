// Package audit provides the asynchronous observability sink for session
// lifecycle events.
//
// Events are emitted by the Manager for every state transition and for every
// swallowed error (failed server-side logout, failed profile refresh,
// issued-but-discarded login tokens). Forwarding to the configured sink
// happens on a dedicated goroutine so emission never blocks a lifecycle
// operation.
//
// # Architecture boundaries
//
// This package owns the event model, the sink interface, and the dispatcher.
// It does NOT decide which events exist — event type names are declared by the
// root package — and it never inspects event payloads.
//
// # What this package must NOT do
//
//   - Import the root package or any sibling package.
//   - Block an emitter for longer than the configured policy allows.
//   - Carry credentials in event payloads (token values never enter Metadata).
package audit
