package flows

import (
	"context"
	"errors"

	"github.com/rgbim/rgbim-go/backend"
	"github.com/rgbim/rgbim-go/session"
)

// ErrEmptyCredentials short-circuits login before any network call.
var ErrEmptyCredentials = errors.New("empty credentials")

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Exchange     func(ctx context.Context, email, password string) (backend.Credentials, error)
	FetchProfile func(ctx context.Context, accessToken string) (backend.Profile, error)
	MapRole      func(role string) string
	// PersistPair writes the user record and token pair in one atomic step.
	PersistPair func(ctx context.Context, user *session.UserRecord, tokens *session.TokenRecord) error
}

// LoginResult carries the state the Manager commits on success. ExchangeOK
// with a non-nil Err marks the orphaned-token path: the backend issued a
// valid pair that the client is discarding because the profile fetch failed.
type LoginResult struct {
	User       *session.UserRecord
	Tokens     session.TokenRecord
	ExchangeOK bool
	Err        error
}

// RunLogin performs the credential exchange and profile fetch in order. The
// token pair exists before the profile fetch is issued — the fetch needs it —
// and nothing is persisted unless both steps succeed, so durable storage
// never holds a token without its user or vice versa.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	if email == "" || password == "" {
		return LoginResult{Err: ErrEmptyCredentials}
	}

	creds, err := deps.Exchange(ctx, email, password)
	if err != nil {
		return LoginResult{Err: err}
	}

	profile, err := deps.FetchProfile(ctx, creds.AccessToken)
	if err != nil {
		return LoginResult{ExchangeOK: true, Err: err}
	}

	user := &session.UserRecord{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  profile.Name,
		Plan:  deps.MapRole(profile.Role),
	}
	tokens := session.TokenRecord{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}

	if err := deps.PersistPair(ctx, user, &tokens); err != nil {
		return LoginResult{ExchangeOK: true, Err: err}
	}

	return LoginResult{User: user, Tokens: tokens, ExchangeOK: true}
}
