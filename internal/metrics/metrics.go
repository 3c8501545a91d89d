package metrics

import "sync/atomic"

// MetricID identifies one counter slot.
type MetricID int

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricLoginRejectedEmpty
	MetricLoginOrphanedTokens
	MetricLogout
	MetricLogoutBackendError
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricProfileLocalUpdate
	MetricRestoreCompleted
	MetricRestoreDiscardedSlot
	MetricAccountValidateSuccess
	MetricAccountValidateFailure

	MetricIDCount
)

// paddedCounter keeps each slot on its own cache line so hot counters do not
// false-share.
type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Config controls whether counting is active. When Enabled is false every
// operation is a no-op and Snapshot returns an empty table.
type Config struct {
	Enabled bool
}

// Metrics holds the counter table. The zero value is unusable; construct via
// New. A nil *Metrics is a valid no-op.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]paddedCounter
}

func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc adds one to the counter. Out-of-range IDs are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id < 0 || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Snapshot is a point-in-time deep copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64, MetricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
