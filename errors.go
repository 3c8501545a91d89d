package rgbim

import "errors"

var (
	// ErrInvalidCredentials is the uniform login failure reported to callers
	// regardless of whether the cause was validation, a wrong password, or
	// transport trouble.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned by operations that require an access
	// token when none is held.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrStoreRequired is returned by Build when no persistence adapter was
	// provided.
	ErrStoreRequired = errors.New("session store required")
)
