package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reschedule outcomes recorded against the reschedule counter.
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeRolledBack = "rolled_back"
	OutcomeStale      = "stale"
)

// Metrics encapsulates Prometheus instrumentation for the board gateway.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	dragStarted      prometheus.Counter
	dropTotal        *prometheus.CounterVec
	rescheduleTotal  *prometheus.CounterVec
	refreshTotal     *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// New registers the gateway's Prometheus collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream scheduling API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	dragStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_drags_started_total",
		Help: "Total drag gestures accepted by the board",
	})

	dropTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_drops_total",
		Help: "Total drop attempts by resolution result",
	}, []string{"result"})

	rescheduleTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_reschedules_total",
		Help: "Total optimistic reschedules by settlement outcome",
	}, []string{"outcome"})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_refreshes_total",
		Help: "Total derived-collection refreshes by result",
	}, []string{"result"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "refdata_cache_hits_total",
		Help: "Total reference-data cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "refdata_cache_misses_total",
		Help: "Total reference-data cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		upstreamDuration,
		dragStarted,
		dropTotal,
		rescheduleTotal,
		refreshTotal,
		cacheHits,
		cacheMisses,
		goroutines,
	)

	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		dragStarted:      dragStarted,
		dropTotal:        dropTotal,
		rescheduleTotal:  rescheduleTotal,
		refreshTotal:     refreshTotal,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// Handler exposes the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return m.handler
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, http.StatusText(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveUpstream records the duration of one upstream API call.
func (m *Metrics) ObserveUpstream(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDragStarted counts an accepted drag gesture.
func (m *Metrics) RecordDragStarted() {
	if m == nil {
		return
	}
	m.dragStarted.Inc()
}

// RecordDrop counts a drop attempt. Result is one of "rescheduled",
// "same_cell", "unresolved" or "no_drag".
func (m *Metrics) RecordDrop(result string) {
	if m == nil {
		return
	}
	m.dropTotal.WithLabelValues(result).Inc()
}

// RecordReschedule counts a settled reschedule operation.
func (m *Metrics) RecordReschedule(outcome string) {
	if m == nil {
		return
	}
	m.rescheduleTotal.WithLabelValues(outcome).Inc()
}

// RecordRefresh counts a derived-collection refresh attempt.
func (m *Metrics) RecordRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}

// RecordCacheLookup counts a reference-data cache lookup.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		return
	}
	m.cacheMisses.Inc()
}
