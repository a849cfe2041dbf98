package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/academy-crm/internal/models"
)

// Sync cycle outcomes.
const (
	SyncOutcomeSuccess      = "success"
	SyncOutcomeUnauthorized = "unauthorized"
	SyncOutcomeFailed       = "failed"
	SyncOutcomeStale        = "stale"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	syncDuration     *prometheus.HistogramVec
	forcedLogouts    *prometheus.CounterVec
	localRecords     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
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
		Name:    "academy_api_request_duration_seconds",
		Help:    "Duration of academy API calls; status 0 means the call never got a response",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "academy_sync_duration_seconds",
		Help:    "Duration of data sync cycles by outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	forcedLogouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_forced_logouts_total",
		Help: "Sessions ended by the gateway rather than the operator",
	}, []string{"reason"})

	localRecords := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_local_records_total",
		Help: "Records created or changed only in the gateway cache",
	}, []string{"entity"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, syncDuration, forcedLogouts, localRecords, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		syncDuration:     syncDuration,
		forcedLogouts:    forcedLogouts,
		localRecords:     localRecords,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records inbound request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstream records one academy API call.
func (m *MetricsService) ObserveUpstream(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveSync records a finished sync cycle.
func (m *MetricsService) ObserveSync(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.syncDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordForcedLogout counts a session the gateway ended on its own.
func (m *MetricsService) RecordForcedLogout(reason string) {
	if m == nil {
		return
	}
	m.forcedLogouts.WithLabelValues(reason).Inc()
}

// RecordLocalRecords counts cache-only writes for an entity.
func (m *MetricsService) RecordLocalRecords(entity models.Entity, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.localRecords.WithLabelValues(string(entity)).Add(float64(n))
}
