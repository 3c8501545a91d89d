package backend

import (
	"context"
	"fmt"
	"io"
)

// Role strings as the backend emits them in the profile payload.
const (
	RolePremium = "Premium"
	RoleAdmin   = "Admin"
	RoleCommon  = "Comum"
)

// Credentials is the result of the credential exchange.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Profile is the account profile as returned by the backend. Name and Role
// may be empty.
type Profile struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Client is the backend surface the session Manager consumes. The three core
// operations are Login, Logout, and Profile; the rest serve account signup,
// the subscription flow, and the download catalog.
type Client interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, email, password string) (Credentials, error)

	// Logout invalidates the server-side session for the token. Callers are
	// expected to clear local state even when this fails.
	Logout(ctx context.Context, accessToken string) error

	// Profile fetches the account profile for the token.
	Profile(ctx context.Context, accessToken string) (Profile, error)

	// Register creates an account and returns the backend's success message.
	Register(ctx context.Context, name, email, password, passwordConfirm string) (string, error)

	// ValidateCode confirms the e-mail verification code sent at signup.
	ValidateCode(ctx context.Context, email, code string) error

	// StartSubscription opens a checkout session and returns the redirect
	// URL. Payment itself is entirely the processor's business.
	StartSubscription(ctx context.Context, accessToken string) (string, error)

	// CancelSubscription cancels the active subscription.
	CancelSubscription(ctx context.Context, accessToken string) error

	// PluginDownloadLinks returns the authenticated plugin catalog, keyed by
	// plugin key (e.g. "Plugin2026").
	PluginDownloadLinks(ctx context.Context, accessToken string) (map[string]string, error)

	// DownloadProduct streams a product file. The caller closes the reader.
	DownloadProduct(ctx context.Context, accessToken, material, name string) (io.ReadCloser, error)
}

// Error is the uniform failure for any non-2xx backend response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}
