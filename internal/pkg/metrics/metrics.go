// Package metrics exposes Prometheus counters and histograms for attendance
// operations, background scans and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder owns the registry and every collector.
type Recorder struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	summariesCapped   prometheus.Counter
	violations        *prometheus.CounterVec
	repairedRecords   prometheus.Counter
	scanRuns          *prometheus.CounterVec
	inconsistentStaff prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a recorder. Without WithRegistry it uses a private registry
// carrying the Go and process collectors.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:        "timeclock",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.operations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "attendance",
		Name:      "operations_total",
		Help:      "Attendance operations by name and outcome",
	}, []string{"operation", "outcome"})

	r.operationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "attendance",
		Name:      "operation_duration_seconds",
		Help:      "Attendance operation latency",
		Buckets:   r.histogramBuckets,
	}, []string{"operation"})

	r.summariesCapped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "attendance",
		Name:      "summaries_capped_total",
		Help:      "Monthly summaries whose minute total hit the monthly cap",
	})

	r.violations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "attendance",
		Name:      "consistency_violations_total",
		Help:      "Record consistency violations found, by kind",
	}, []string{"kind"})

	r.repairedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "attendance",
		Name:      "repaired_records_total",
		Help:      "Superfluous open records deleted by explicit repair",
	})

	r.scanRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "cron",
		Name:      "consistency_scans_total",
		Help:      "Consistency scan runs by outcome",
	}, []string{"outcome"})

	r.inconsistentStaff = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "cron",
		Name:      "inconsistent_staff",
		Help:      "Staff members with inconsistent records at the last scan",
	})

	r.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	r.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   r.histogramBuckets,
	}, []string{"method", "route"})
}

// Registry is what the /metrics handler gathers from.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveOperation records one service call. Pass the error the call returned.
func (r *Recorder) ObserveOperation(operation string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (r *Recorder) SummaryCapped() {
	r.summariesCapped.Inc()
}

func (r *Recorder) Violation(kind string) {
	r.violations.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordsRepaired(n int64) {
	if n > 0 {
		r.repairedRecords.Add(float64(n))
	}
}

// ScanFinished records a consistency scan and how many staff failed it.
func (r *Recorder) ScanFinished(inconsistent int, err error) {
	if err != nil {
		r.scanRuns.WithLabelValues(OutcomeError).Inc()
		return
	}
	r.scanRuns.WithLabelValues(OutcomeSuccess).Inc()
	r.inconsistentStaff.Set(float64(inconsistent))
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
