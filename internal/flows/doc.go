// Package flows implements session lifecycle orchestration as plain functions
// over explicit dependency structs.
//
// Each flow receives everything it touches — backend calls, persistence,
// role mapping — as fields of a deps struct, so every path is testable with
// fakes and the root package stays the single owner of in-memory state: flows
// return results, the Manager commits them.
//
// # What this package must NOT do
//
//   - Import the root package (dependencies arrive as funcs and sibling
//     package types).
//   - Mutate Manager state or emit audit events (the Manager does both from
//     flow results).
package flows
