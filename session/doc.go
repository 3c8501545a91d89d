// Package session provides durable persistence for the two pieces of client
// session state — the user record and the token pair — with a compact
// versioned binary encoding.
//
// # Binary encoding
//
// Records are stored as a compact binary format with a leading schema version
// byte. The encoder is append-only: new versions add fields but never
// reinterpret old ones. Decode failures are reported as errors and are mapped
// to "absent" by session restoration, never raised to the user.
//
// # Storage engines
//
// Three [Store] implementations ship with the package: Badger for a local
// on-disk store surviving process restarts, Redis for deployments that share
// session state across hosts, and an in-memory store for tests. All three
// write the two slots atomically in [Store.WriteAll].
//
// Values are stored in plaintext. Tokens at rest are only as private as the
// store behind them.
//
// # Architecture boundaries
//
// This package owns the [Store] contract and the record codec. It does NOT
// interpret tokens, talk to the backend, or enforce session policy — those
// responsibilities belong to the Manager.
//
// # What this package must NOT do
//
//   - Import the root package (no upward imports).
//   - Clear or rewrite slots on its own initiative.
package session
