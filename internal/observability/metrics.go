// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Computation metrics
	ChartsBuilt       prometheus.Counter
	VargasComputed    *prometheus.CounterVec
	DashaTreesBuilt   prometheus.Counter
	SubLordLookups    prometheus.Counter
	PanchangaDays     prometheus.Counter
	MatchesScored     prometheus.Counter
	MuhurtaScans      prometheus.Counter
	ComputationErrors *prometheus.CounterVec

	// Ephemeris provider metrics
	ProviderCalls   *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec

	// API metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	TransitStreamsOpen  prometheus.Gauge

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulComputation prometheus.Gauge
	UptimeSeconds             prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "jyotish_engine"
	}

	return &Metrics{
		// Computation metrics
		ChartsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "charts_built_total",
			Help:      "Total number of natal charts built",
		}),
		VargasComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "vargas_computed_total",
			Help:      "Total number of divisional charts computed by divisor",
		}, []string{"divisor"}),
		DashaTreesBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "dasha_trees_built_total",
			Help:      "Total number of dasha trees built",
		}),
		SubLordLookups: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "sublord_lookups_total",
			Help:      "Total number of sub-lord chain lookups",
		}),
		PanchangaDays: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "panchanga_days_total",
			Help:      "Total number of panchanga days computed",
		}),
		MatchesScored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "matches_scored_total",
			Help:      "Total number of compatibility matches scored",
		}),
		MuhurtaScans: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "muhurta_scans_total",
			Help:      "Total number of muhurta day scans",
		}),
		ComputationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compute",
			Name:      "errors_total",
			Help:      "Total number of computation errors by operation",
		}, []string{"operation"}),

		// Ephemeris provider metrics
		ProviderCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ephemeris",
			Name:      "provider_calls_total",
			Help:      "Total number of ephemeris provider calls by query",
		}, []string{"query"}),
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ephemeris",
			Name:      "provider_latency_seconds",
			Help:      "Ephemeris provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ephemeris",
			Name:      "provider_errors_total",
			Help:      "Total number of ephemeris provider errors by query",
		}, []string{"query"}),

		// API metrics
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		TransitStreamsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "transit_streams_open",
			Help:      "Number of open transit websocket streams",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulComputation: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_computation_timestamp",
			Help:      "Unix timestamp of last successful computation",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordChartBuilt increments the charts built counter.
func RecordChartBuilt() {
	DefaultMetrics.ChartsBuilt.Inc()
	DefaultMetrics.LastSuccessfulComputation.SetToCurrentTime()
}

// RecordVargaComputed increments the varga counter for a divisor.
func RecordVargaComputed(divisor string) {
	DefaultMetrics.VargasComputed.WithLabelValues(divisor).Inc()
}

// RecordDashaTreeBuilt increments the dasha trees built counter.
func RecordDashaTreeBuilt() {
	DefaultMetrics.DashaTreesBuilt.Inc()
}

// RecordPanchangaDay increments the panchanga days computed counter.
func RecordPanchangaDay() {
	DefaultMetrics.PanchangaDays.Inc()
	DefaultMetrics.LastSuccessfulComputation.SetToCurrentTime()
}

// RecordComputationError records a computation error for an operation.
func RecordComputationError(operation string) {
	DefaultMetrics.ComputationErrors.WithLabelValues(operation).Inc()
}

// RecordProviderCall records an ephemeris provider call.
func RecordProviderCall(query string, seconds float64, err error) {
	DefaultMetrics.ProviderCalls.WithLabelValues(query).Inc()
	DefaultMetrics.ProviderLatency.WithLabelValues(query).Observe(seconds)
	if err != nil {
		DefaultMetrics.ProviderErrors.WithLabelValues(query).Inc()
	}
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// TimeDBQuery starts a query timer. Call the returned func with the final
// error once the query completes.
func TimeDBQuery(database, operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		RecordDBQuery(database, operation, time.Since(start).Seconds(), err)
	}
}

// TrackUptime increments the uptime counter once per second until the context
// is cancelled.
func TrackUptime(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			DefaultMetrics.UptimeSeconds.Inc()
		}
	}
}
