package flows

import (
	"context"

	"github.com/rgbim/rgbim-go/backend"
	"github.com/rgbim/rgbim-go/session"
)

// RefreshDeps captures profile refresh dependencies.
type RefreshDeps struct {
	FetchProfile func(ctx context.Context, accessToken string) (backend.Profile, error)
	MapRole      func(role string) string
	PersistPair  func(ctx context.Context, user *session.UserRecord, tokens *session.TokenRecord) error
}

// RefreshResult carries the replacement user record, or the error the Manager
// reports to the audit sink without touching state.
type RefreshResult struct {
	User *session.UserRecord
	Err  error
}

// RunRefreshProfile re-fetches the profile for the current token and
// re-persists it together with the unchanged token pair. The caller holds the
// no-token precondition; failures leave prior state intact — a stale profile
// beats a forced logout on a flaky network.
func RunRefreshProfile(ctx context.Context, tokens session.TokenRecord, deps RefreshDeps) RefreshResult {
	profile, err := deps.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		return RefreshResult{Err: err}
	}

	user := &session.UserRecord{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  profile.Name,
		Plan:  deps.MapRole(profile.Role),
	}

	if err := deps.PersistPair(ctx, user, &tokens); err != nil {
		return RefreshResult{Err: err}
	}

	return RefreshResult{User: user}
}
