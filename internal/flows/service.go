package flows

import (
	"context"

	"github.com/rgbim/rgbim-go/session"
)

// Deps groups flow dependency sets. The root Manager builds this once and
// delegates lifecycle methods to the matching flow implementation.
type Deps struct {
	Login   LoginDeps
	Logout  LogoutDeps
	Refresh RefreshDeps
	Restore RestoreDeps
}

// Service is the centralized flow runner built once by the Manager.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.Exchange != nil
}

func (s Service) Login(ctx context.Context, email, password string) LoginResult {
	return RunLogin(ctx, email, password, s.deps.Login)
}

func (s Service) Logout(ctx context.Context, accessToken string) LogoutResult {
	return RunLogout(ctx, accessToken, s.deps.Logout)
}

func (s Service) RefreshProfile(ctx context.Context, tokens session.TokenRecord) RefreshResult {
	return RunRefreshProfile(ctx, tokens, s.deps.Refresh)
}

func (s Service) Restore(ctx context.Context) RestoreResult {
	return RunRestore(ctx, s.deps.Restore)
}
