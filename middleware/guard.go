package middleware

import (
	"context"
	"net/http"

	rgbim "github.com/rgbim/rgbim-go"
)

// Decision is the guard's verdict for one protected navigation.
type Decision uint8

const (
	// DecisionHold renders a placeholder and takes no routing action; the
	// session is still being restored.
	DecisionHold Decision = iota
	// DecisionRedirect sends the visitor to the login view, replacing the
	// current navigation entry.
	DecisionRedirect
	// DecisionAllow renders the protected content.
	DecisionAllow
)

// Decide maps session state to a guard verdict. Pure; the full state machine
// of the guard is this function.
func Decide(state rgbim.State) Decision {
	switch state {
	case rgbim.StateLoading:
		return DecisionHold
	case rgbim.StateAuthenticated:
		return DecisionAllow
	default:
		return DecisionRedirect
	}
}

// SessionSource is the slice of the Manager the guard needs. Tests inject a
// fake.
type SessionSource interface {
	Snapshot() rgbim.SessionInfo
}

type sessionContextKey struct{}

// SessionFromContext returns the snapshot injected by [RequireSession].
func SessionFromContext(ctx context.Context) (rgbim.SessionInfo, bool) {
	info, ok := ctx.Value(sessionContextKey{}).(rgbim.SessionInfo)
	return info, ok
}

// RequireSession gates a handler on an authenticated session. While the
// session is restoring it serves a minimal retry placeholder; with no user it
// redirects to loginPath with 303 See Other so the protected URL never enters
// history; otherwise it forwards with the snapshot in the request context.
func RequireSession(source SessionSource, loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if source == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			info := source.Snapshot()
			switch Decide(info.State()) {
			case DecisionHold:
				w.Header().Set("Cache-Control", "no-store")
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session restoring", http.StatusServiceUnavailable)
			case DecisionRedirect:
				w.Header().Set("Cache-Control", "no-store")
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
			case DecisionAllow:
				ctx := context.WithValue(r.Context(), sessionContextKey{}, info)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
