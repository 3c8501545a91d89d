package rgbim

import internalmetrics "github.com/rgbim/rgbim-go/internal/metrics"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess           = internalmetrics.MetricLoginSuccess
	MetricLoginFailure           = internalmetrics.MetricLoginFailure
	MetricLoginRejectedEmpty     = internalmetrics.MetricLoginRejectedEmpty
	MetricLoginOrphanedTokens    = internalmetrics.MetricLoginOrphanedTokens
	MetricLogout                 = internalmetrics.MetricLogout
	MetricLogoutBackendError     = internalmetrics.MetricLogoutBackendError
	MetricRefreshSuccess         = internalmetrics.MetricRefreshSuccess
	MetricRefreshFailure         = internalmetrics.MetricRefreshFailure
	MetricProfileLocalUpdate     = internalmetrics.MetricProfileLocalUpdate
	MetricRestoreCompleted       = internalmetrics.MetricRestoreCompleted
	MetricRestoreDiscardedSlot   = internalmetrics.MetricRestoreDiscardedSlot
	MetricAccountValidateSuccess = internalmetrics.MetricAccountValidateSuccess
	MetricAccountValidateFailure = internalmetrics.MetricAccountValidateFailure
)

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot
