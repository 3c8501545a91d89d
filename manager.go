package rgbim

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rgbim/rgbim-go/backend"
	"github.com/rgbim/rgbim-go/internal/audit"
	"github.com/rgbim/rgbim-go/internal/flows"
	"github.com/rgbim/rgbim-go/internal/metrics"
	"github.com/rgbim/rgbim-go/session"
)

// Manager is the single authority for "who is logged in" and "what credential
// to attach to backend calls". It owns the in-memory session, is the only
// writer of the durable slots, and hands out snapshot copies to readers.
//
// Construct via [Builder.Build], which also starts session restoration from
// durable storage in the background.
type Manager struct {
	cfg     Config
	store   session.Store
	slots   session.Slots
	backend backend.Client
	flows   flows.Service
	logger  *slog.Logger

	mu      sync.RWMutex
	user    *User
	tokens  TokenPair
	loading bool

	ready     chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once

	metrics    *metrics.Metrics
	dispatcher *audit.Dispatcher
}

// Ready returns a channel closed exactly once, when restoration from durable
// storage has completed. Until then Snapshot reports Loading and the guard
// holds navigation.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady blocks until restoration completes or ctx is done.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Backend exposes the underlying client for operations outside the session
// core (registration, subscription checkout, downloads). Callers obtain the
// credential to attach via [Manager.AccessToken].
func (m *Manager) Backend() backend.Client {
	return m.backend
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info := SessionInfo{
		Tokens:  m.tokens,
		Loading: m.loading,
	}
	if m.user != nil {
		u := *m.user
		info.User = &u
	}
	if m.tokens.AccessToken != "" {
		info.AccessExpiresAt = accessTokenExpiry(m.tokens.AccessToken)
	}
	return info
}

// State derives the guard state from the current snapshot.
func (m *Manager) State() State {
	return m.Snapshot().State()
}

// AccessToken returns the current bearer credential, empty when logged out.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.AccessToken
}

// Login exchanges credentials for a token pair, fetches the profile with the
// fresh access token, and commits both to memory and durable storage. It
// reports success as a bare boolean: the caller shows one generic failure
// message no matter whether validation, the exchange, or the profile fetch
// failed.
//
// Empty credentials fail immediately with no network call. A failure after a
// successful exchange leaves the backend holding a session the client never
// stored; that inconsistency is recoverable (the user logs in again) and is
// reported to the audit sink.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	if m.closed.Load() {
		return false
	}

	result := m.flows.Login(ctx, email, password)

	if errors.Is(result.Err, flows.ErrEmptyCredentials) {
		m.metrics.Inc(metrics.MetricLoginRejectedEmpty)
		return false
	}

	if result.Err != nil {
		m.metrics.Inc(metrics.MetricLoginFailure)
		if result.ExchangeOK {
			m.metrics.Inc(metrics.MetricLoginOrphanedTokens)
			m.emitFailure(ctx, EventLoginOrphanTokens, email, result.Err)
		} else {
			m.emitFailure(ctx, EventLoginFailure, email, result.Err)
		}
		return false
	}

	m.mu.Lock()
	m.user = userFromRecord(result.User)
	m.tokens = TokenPair{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
	m.mu.Unlock()

	m.metrics.Inc(metrics.MetricLoginSuccess)
	event := audit.NewEvent(EventLoginSuccess)
	event.Success = true
	event.UserID = result.User.ID
	event.Email = result.User.Email
	m.dispatcher.Emit(ctx, event)

	return true
}

// Logout invalidates the server-side session when a token is held, then
// unconditionally clears memory and durable storage. It never fails from the
// caller's perspective: a backend or storage error is audited and swallowed,
// because the client-side session must always be clearable.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	token := m.tokens.AccessToken
	m.mu.RUnlock()

	result := m.flows.Logout(ctx, token)

	m.mu.Lock()
	m.user = nil
	m.tokens = TokenPair{}
	m.mu.Unlock()

	if result.BackendErr != nil {
		m.metrics.Inc(metrics.MetricLogoutBackendError)
		m.emitFailure(ctx, EventLogoutBackendError, "", result.BackendErr)
	}
	if result.ClearErr != nil {
		m.logger.Error("logout: clearing durable session failed", "error", result.ClearErr)
	}

	m.metrics.Inc(metrics.MetricLogout)
	event := audit.NewEvent(EventLogout)
	event.Success = true
	m.dispatcher.Emit(ctx, event)
}

// RefreshProfile re-fetches the profile with the current access token and
// replaces the user record, recomputing the plan. Without a token it is a
// no-op. On failure the session is left untouched and the error goes to the
// audit sink only — a stale profile is preferred over a forced logout.
func (m *Manager) RefreshProfile(ctx context.Context) {
	m.mu.RLock()
	tokens := m.tokens
	m.mu.RUnlock()

	if tokens.AccessToken == "" {
		return
	}

	result := m.flows.RefreshProfile(ctx, session.TokenRecord{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if result.Err != nil {
		m.metrics.Inc(metrics.MetricRefreshFailure)
		m.emitFailure(ctx, EventProfileRefreshFailure, "", result.Err)
		return
	}

	m.mu.Lock()
	m.user = userFromRecord(result.User)
	m.mu.Unlock()

	m.metrics.Inc(metrics.MetricRefreshSuccess)
}

// UpdateProfileLocal merges a partial edit into the current user and
// re-persists it with the existing token pair. Used for optimistic UI edits
// not yet confirmed by a backend write. A no-op when logged out.
func (m *Manager) UpdateProfileLocal(update ProfileUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return
	}

	if update.Email != nil {
		m.user.Email = *update.Email
	}
	if update.Name != nil {
		m.user.Name = *update.Name
	}

	record := recordFromUser(m.user)
	tokens := session.TokenRecord{
		AccessToken:  m.tokens.AccessToken,
		RefreshToken: m.tokens.RefreshToken,
	}
	if err := m.persistPair(context.Background(), record, &tokens); err != nil {
		m.logger.Error("local profile update: persist failed", "error", err)
	}

	m.metrics.Inc(metrics.MetricProfileLocalUpdate)
}

// ValidateAccount confirms the e-mail verification code sent at signup,
// converting any failure to a boolean like Login does.
func (m *Manager) ValidateAccount(ctx context.Context, email, code string) bool {
	if err := m.backend.ValidateCode(ctx, email, code); err != nil {
		m.metrics.Inc(metrics.MetricAccountValidateFailure)
		m.emitFailure(ctx, EventAccountValidate, email, err)
		return false
	}

	m.metrics.Inc(metrics.MetricAccountValidateSuccess)
	event := audit.NewEvent(EventAccountValidate)
	event.Success = true
	event.Email = email
	m.dispatcher.Emit(ctx, event)
	return true
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// AuditDropped reports audit events discarded due to backpressure.
func (m *Manager) AuditDropped() uint64 {
	return m.dispatcher.Dropped()
}

// Close drains the audit dispatcher. The session store and backend client are
// caller-owned and stay open.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.dispatcher.Close()
	})
}

// restore runs once, started by Build. Both slots are read independently;
// whatever cannot be read or decoded is treated as absent. Loading stays true
// until both reads have been attempted, so the guard never decides on a
// transitional state, and a failed read never erases what is stored.
func (m *Manager) restore(ctx context.Context) {
	result := m.flows.Restore(ctx)

	m.mu.Lock()
	if result.Tokens != nil {
		m.tokens = TokenPair{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
		}
	}
	if result.User != nil {
		m.user = userFromRecord(result.User)
	}
	m.loading = false
	m.mu.Unlock()

	if result.UserDiscarded || result.TokensDiscarded {
		m.metrics.Inc(metrics.MetricRestoreDiscardedSlot)
		m.logger.Warn("session restore: discarded unreadable slot data",
			"user_discarded", result.UserDiscarded,
			"tokens_discarded", result.TokensDiscarded,
			"user_error", result.UserErr,
			"tokens_error", result.TokensErr,
		)
	}

	m.metrics.Inc(metrics.MetricRestoreCompleted)
	event := audit.NewEvent(EventRestoreComplete)
	event.Success = true
	if result.User != nil {
		event.UserID = result.User.ID
	}
	m.dispatcher.Emit(ctx, event)

	close(m.ready)
}

func (m *Manager) persistPair(ctx context.Context, user *session.UserRecord, tokens *session.TokenRecord) error {
	userData, err := session.EncodeUser(user)
	if err != nil {
		return err
	}
	tokenData, err := session.EncodeTokens(tokens)
	if err != nil {
		return err
	}
	return m.store.WriteAll(ctx, map[string][]byte{
		m.slots.User:   userData,
		m.slots.Tokens: tokenData,
	})
}

func (m *Manager) clearStore(ctx context.Context) error {
	return m.store.WriteAll(ctx, map[string][]byte{
		m.slots.User:   nil,
		m.slots.Tokens: nil,
	})
}

func (m *Manager) emitFailure(ctx context.Context, eventType, email string, cause error) {
	event := audit.NewEvent(eventType)
	event.Email = email
	if cause != nil {
		event.Error = cause.Error()
	}
	m.dispatcher.Emit(ctx, event)
}

func userFromRecord(record *session.UserRecord) *User {
	return &User{
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Plan:  Plan(record.Plan),
	}
}

func recordFromUser(u *User) *session.UserRecord {
	return &session.UserRecord{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Plan:  string(u.Plan),
	}
}
