// Package metrics provides a chain option exporting Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "cichain"
	chainSubsystem   = "chain"
)

// Metrics holds the Prometheus metrics of chain runs.
type Metrics struct {
	// RunsTotal counts finished runs by terminal state and pipeline kind.
	RunsTotal *prometheus.CounterVec
	// LinkDurationSeconds observes how long each link takes.
	LinkDurationSeconds *prometheus.HistogramVec
	// LinkFailuresTotal counts link errors.
	LinkFailuresTotal *prometheus.CounterVec
	// LinkBreaksTotal counts links that stopped a run.
	LinkBreaksTotal *prometheus.CounterVec
	// ActiveRuns is the number of runs in progress.
	ActiveRuns prometheus.Gauge
}

// NewMetrics creates the chain metrics and registers them with reg.
// A nil reg uses the default Prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chainSubsystem,
				Name:      "runs_total",
				Help:      "Total number of chain runs by terminal state and pipeline kind",
			},
			[]string{"state", "kind"},
		),
		LinkDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: chainSubsystem,
				Name:      "link_duration_seconds",
				Help:      "Time spent performing each link in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"link"},
		),
		LinkFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chainSubsystem,
				Name:      "link_failures_total",
				Help:      "Total number of link errors by link",
			},
			[]string{"link"},
		),
		LinkBreaksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: chainSubsystem,
				Name:      "link_breaks_total",
				Help:      "Total number of runs stopped early by link",
			},
			[]string{"link"},
		),
		ActiveRuns: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: chainSubsystem,
				Name:      "active_runs",
				Help:      "Number of chain runs in progress",
			},
		),
	}
}
