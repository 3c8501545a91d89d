// Package prometheus exports the session lifecycle counters as a
// prometheus.Collector.
//
// The collector reads [rgbim.MetricsSnapshot] values on scrape; it keeps no
// state of its own and can be registered on any registry alongside the rest
// of an application's metrics.
package prometheus
