// Package backend wraps the RGBim account service's HTTP API.
//
// The wire contract is the backend's, not ours: request and response field
// names (senha, tokenAcesso, mensagemSucesso, funcao) are preserved verbatim
// in struct tags. Non-2xx responses are converted into [*Error] values
// carrying the human-readable message the backend put in its error envelope,
// falling back to the HTTP status text.
//
// # Architecture boundaries
//
// This package translates Go calls into HTTP requests and nothing more. It
// holds no session state, persists nothing, and never retries — retry policy
// belongs to the caller.
//
// # What this package must NOT do
//
//   - Cache tokens or profiles.
//   - Interpret the role string (the root package owns the plan mapping).
//   - Follow the Stripe checkout URL ([Client.StartSubscription] returns it
//     for the caller to redirect to).
package backend
