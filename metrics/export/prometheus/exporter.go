package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rgbim "github.com/rgbim/rgbim-go"
)

// Source is the slice of the Manager the collector reads.
type Source interface {
	MetricsSnapshot() rgbim.MetricsSnapshot
	AuditDropped() uint64
}

type counterDef struct {
	id   rgbim.MetricID
	desc *prometheus.Desc
}

func newDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc("rgbim_"+name, help, nil, nil)
}

var counterDefs = []counterDef{
	{rgbim.MetricLoginSuccess, newDesc("login_success_total", "Completed logins.")},
	{rgbim.MetricLoginFailure, newDesc("login_failure_total", "Failed logins (network or backend rejection).")},
	{rgbim.MetricLoginRejectedEmpty, newDesc("login_rejected_empty_total", "Logins rejected locally for empty credentials.")},
	{rgbim.MetricLoginOrphanedTokens, newDesc("login_orphaned_tokens_total", "Logins where issued tokens were discarded after a failed profile fetch.")},
	{rgbim.MetricLogout, newDesc("logout_total", "Logout operations.")},
	{rgbim.MetricLogoutBackendError, newDesc("logout_backend_error_total", "Swallowed server-side logout failures.")},
	{rgbim.MetricRefreshSuccess, newDesc("profile_refresh_success_total", "Successful profile refreshes.")},
	{rgbim.MetricRefreshFailure, newDesc("profile_refresh_failure_total", "Swallowed profile refresh failures.")},
	{rgbim.MetricProfileLocalUpdate, newDesc("profile_local_update_total", "Optimistic local profile edits.")},
	{rgbim.MetricRestoreCompleted, newDesc("restore_completed_total", "Session restorations completed.")},
	{rgbim.MetricRestoreDiscardedSlot, newDesc("restore_discarded_slot_total", "Restorations that discarded unreadable slot data.")},
	{rgbim.MetricAccountValidateSuccess, newDesc("account_validate_success_total", "Successful e-mail code validations.")},
	{rgbim.MetricAccountValidateFailure, newDesc("account_validate_failure_total", "Failed e-mail code validations.")},
}

var auditDroppedDesc = newDesc("audit_dropped_total", "Audit events dropped due to dispatcher backpressure.")

// Collector adapts a [Source] to prometheus.Collector.
type Collector struct {
	source Source
}

// NewCollector creates a collector reading from the given Manager (or any
// other [Source]).
func NewCollector(source Source) *Collector {
	return &Collector{source: source}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, def := range counterDefs {
		ch <- def.desc
	}
	ch <- auditDroppedDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c == nil || c.source == nil {
		return
	}

	snapshot := c.source.MetricsSnapshot()
	for _, def := range counterDefs {
		ch <- prometheus.MustNewConstMetric(def.desc, prometheus.CounterValue, float64(snapshot.Counters[def.id]))
	}
	ch <- prometheus.MustNewConstMetric(auditDroppedDesc, prometheus.CounterValue, float64(c.source.AuditDropped()))
}

// Handler registers the collector on a fresh registry and returns a scrape
// handler, for callers without their own registry.
func Handler(source Source) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(source))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
