package rgbim

import "time"

// Plan is the access tier derived from the backend-supplied role. It is never
// set directly by the client.
type Plan string

const (
	// PlanFree is the default tier for unknown or absent roles.
	PlanFree Plan = "free"
	// PlanPremium is the paid subscription tier.
	PlanPremium Plan = "premium"
	// PlanAdmin is the administrative tier.
	PlanAdmin Plan = "admin"
)

// PlanFromRole maps the backend role string to a [Plan]. The backend emits
// "Premium", "Admin", or "Comum"; anything unrecognized degrades to free.
func PlanFromRole(role string) Plan {
	switch role {
	case "Premium":
		return PlanPremium
	case "Admin":
		return PlanAdmin
	default:
		return PlanFree
	}
}

// User is the client-held identity record. A nil *User means unauthenticated.
type User struct {
	ID    string
	Email string
	Name  string
	Plan  Plan
}

// ProfileUpdate is a partial user edit applied by
// [Manager.UpdateProfileLocal]. Nil fields are left unchanged. Plan is absent
// on purpose: it is derived from the backend role and cannot be edited locally.
type ProfileUpdate struct {
	Email *string
	Name  *string
}

// TokenPair holds the opaque credentials issued by the credential exchange.
// The pair is persisted atomically: both present or both absent.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Valid reports whether both halves of the pair are present.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// State is the coarse session state the route guard consumes.
type State uint8

const (
	// StateLoading covers the window between process start and the completion
	// of session restoration from durable storage.
	StateLoading State = iota
	// StateAnonymous means restoration finished and no user is present.
	StateAnonymous
	// StateAuthenticated means a user is present.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionInfo is a point-in-time snapshot of the Manager. Copies are handed to
// readers so the guard and presentation code never observe a torn write.
type SessionInfo struct {
	User    *User
	Tokens  TokenPair
	Loading bool

	// AccessExpiresAt is the expiry claim of the access token when it parses
	// as a JWT, zero otherwise. Informational only: the Manager never acts on
	// it (see package doc).
	AccessExpiresAt time.Time
}

// State derives the guard state from the snapshot.
func (s SessionInfo) State() State {
	switch {
	case s.Loading:
		return StateLoading
	case s.User == nil:
		return StateAnonymous
	default:
		return StateAuthenticated
	}
}
