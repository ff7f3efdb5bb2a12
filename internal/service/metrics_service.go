package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestFailures *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec

	requestCount         uint64
	failureCount         uint64
	requestDurationTotal uint64
	loginCount           uint64
	logoutCount          uint64
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

	requestFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_failures_total",
		Help: "Failed API calls by error code",
	}, []string{"path", "code"})

	sessionEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_events_total",
		Help: "Session transitions by event",
	}, []string{"event"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, requestFailures, sessionEvents, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		requestFailures: requestFailures,
		sessionEvents:   sessionEvents,
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

// Registry exposes the underlying registry for gathering in tests and tools.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics. A zero status means no response arrived.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordFailure counts a failed API call by its error code.
func (m *MetricsService) RecordFailure(path, code string) {
	if m == nil {
		return
	}
	m.requestFailures.WithLabelValues(path, code).Inc()
	atomic.AddUint64(&m.failureCount, 1)
}

// RecordSessionEvent counts login, logout and restore transitions.
func (m *MetricsService) RecordSessionEvent(event string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(event).Inc()
	switch event {
	case sessionEventLogin:
		atomic.AddUint64(&m.loginCount, 1)
	case sessionEventLogout:
		atomic.AddUint64(&m.logoutCount, 1)
	}
}

// Snapshot returns aggregated request metrics.
func (m *MetricsService) Snapshot() models.RequestMetrics {
	if m == nil {
		return models.RequestMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	total := atomic.LoadUint64(&m.requestDurationTotal)
	var avg time.Duration
	if requests > 0 {
		avg = time.Duration(total / requests)
	}
	return models.RequestMetrics{
		Requests:        requests,
		Failures:        atomic.LoadUint64(&m.failureCount),
		AverageDuration: avg,
		Logins:          atomic.LoadUint64(&m.loginCount),
		Logouts:         atomic.LoadUint64(&m.logoutCount),
	}
}
