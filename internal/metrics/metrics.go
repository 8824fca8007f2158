// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/worktime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the ingestion, projection and rollup layers report through.
type Recorder interface {
	RecordIngest(outcome string)
	RecordDiagnostics(source string, diags worktime.Diagnostics)
	RecordViewRequest(view string)
	RecordRollupBatch(duration time.Duration, intervals, months int)
}

// Ingest outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	ingested      *prometheus.CounterVec
	diagnostics   *prometheus.CounterVec
	viewRequests  *prometheus.CounterVec
	rollupLatency prometheus.Histogram
	rollupRecords prometheus.Counter
	rollupMonths  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ingested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_intervals_ingested_total",
			Help: "Work intervals received, by outcome.",
		}, []string{"outcome"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_engine_diagnostics_total",
			Help: "Intervals skipped by the engine, by caller and kind.",
		}, []string{"source", "kind"}),
		viewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_view_requests_total",
			Help: "Timesheet views computed, by view.",
		}, []string{"view"}),
		rollupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timesheet_rollup_batch_seconds",
			Help:    "Latency of one daily totals rollup batch.",
			Buckets: prometheus.DefBuckets,
		}),
		rollupRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_rollup_intervals_total",
			Help: "Intervals consumed by the rollup.",
		}),
		rollupMonths: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_rollup_months_total",
			Help: "Subject months recomputed by the rollup.",
		}),
	}

	reg.MustRegister(
		c.ingested,
		c.diagnostics,
		c.viewRequests,
		c.rollupLatency,
		c.rollupRecords,
		c.rollupMonths,
	)

	return c
}

func (c *Collector) RecordIngest(outcome string) {
	c.ingested.WithLabelValues(outcome).Inc()
}

// RecordDiagnostics counts diagnostics per kind.
func (c *Collector) RecordDiagnostics(source string, diags worktime.Diagnostics) {
	for kind, n := range diags.CountByKind() {
		c.diagnostics.WithLabelValues(source, kind).Add(float64(n))
	}
}

func (c *Collector) RecordViewRequest(view string) {
	c.viewRequests.WithLabelValues(view).Inc()
}

func (c *Collector) RecordRollupBatch(duration time.Duration, intervals, months int) {
	c.rollupLatency.Observe(duration.Seconds())
	c.rollupRecords.Add(float64(intervals))
	c.rollupMonths.Add(float64(months))
}

// Handler serves the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Discard is a Recorder that drops everything. Used when metrics are not wired, e.g. in tests.
type Discard struct{}

func (Discard) RecordIngest(string)                            {}
func (Discard) RecordDiagnostics(string, worktime.Diagnostics) {}
func (Discard) RecordViewRequest(string)                       {}
func (Discard) RecordRollupBatch(time.Duration, int, int)      {}

// OrDiscard returns r, or Discard when r is nil.
func OrDiscard(r Recorder) Recorder {
	if r == nil {
		return Discard{}
	}
	return r
}
