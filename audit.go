package rgbim

import (
	"io"
	"log/slog"

	internalaudit "github.com/rgbim/rgbim-go/internal/audit"
)

// Audit event types emitted by the Manager.
const (
	// EventLoginSuccess marks a completed login: tokens exchanged, profile
	// fetched, pair persisted.
	EventLoginSuccess = "login.success"
	// EventLoginFailure marks a login that failed at the credential exchange.
	EventLoginFailure = "login.failure"
	// EventLoginOrphanTokens marks the recoverable inconsistency where the
	// exchange succeeded but the profile fetch (or persistence) failed: the
	// backend holds a session the client discarded.
	EventLoginOrphanTokens = "login.orphan_tokens"
	// EventLogout marks a completed logout, regardless of backend outcome.
	EventLogout = "logout"
	// EventLogoutBackendError marks a swallowed server-side logout failure.
	EventLogoutBackendError = "logout.backend_error"
	// EventProfileRefreshFailure marks a swallowed profile refresh failure.
	EventProfileRefreshFailure = "profile.refresh_failure"
	// EventRestoreComplete marks the one-shot restoration from durable
	// storage finishing.
	EventRestoreComplete = "restore.complete"
	// EventAccountValidate marks an e-mail code validation attempt.
	EventAccountValidate = "account.validate"
)

// AuditEvent is a structured session lifecycle event.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the Manager's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// SlogSink is an [AuditSink] that forwards events to a structured logger.
type SlogSink = internalaudit.SlogSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// NewSlogSink creates a [SlogSink] over logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return internalaudit.NewSlogSink(logger)
}
