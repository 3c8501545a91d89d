package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Invalidate func(ctx context.Context, accessToken string) error
	ClearStore func(ctx context.Context) error
}

// LogoutResult separates the swallowed backend failure from the storage
// failure so the Manager can audit each without surfacing either.
type LogoutResult struct {
	BackendErr error
	ClearErr   error
}

// RunLogout invalidates the server-side session when a token exists and
// always clears durable storage. The session must be clearable regardless of
// backend reachability, so a failed invalidate never stops the clear.
func RunLogout(ctx context.Context, accessToken string, deps LogoutDeps) LogoutResult {
	var result LogoutResult

	if accessToken != "" {
		result.BackendErr = deps.Invalidate(ctx, accessToken)
	}
	result.ClearErr = deps.ClearStore(ctx)

	return result
}
