package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/adminui-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	intentsTotal        *prometheus.CounterVec
	sessionsCreated     prometheus.Counter
	sessionsEnded       prometheus.Counter
	sessionStoreLatency *prometheus.HistogramVec
	sourceFetchDuration *prometheus.HistogramVec
	sourceRecords       prometheus.Gauge

	requestCount         uint64
	requestDurationTotal uint64
	intentCount          uint64
	createdCount         uint64
	endedCount           uint64
	storeOpCount         uint64
	storeOpDurationTotal uint64
	sourceRecordCount    int64
	sourceFetchOK        atomic.Bool

	mu            sync.Mutex
	intentsByType map[string]uint64
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

	intentsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "table_intents_total",
		Help: "Intents applied to table sessions",
	}, []string{"type"})

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_sessions_created_total",
		Help: "Table sessions opened",
	})

	sessionsEnded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_sessions_ended_total",
		Help: "Table sessions explicitly closed",
	})

	sessionStoreLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "session_store_duration_seconds",
		Help:    "Latency of session store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	sourceFetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "member_source_fetch_duration_seconds",
		Help:    "Duration of the initial member fetch",
		Buckets: prometheus.DefBuckets,
	}, []string{"source", "status"})

	sourceRecords := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "member_source_records",
		Help: "Members returned by the initial fetch",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, intentsTotal, sessionsCreated, sessionsEnded, sessionStoreLatency, sourceFetchDuration, sourceRecords, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:            registry,
		handler:             handler,
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		intentsTotal:        intentsTotal,
		sessionsCreated:     sessionsCreated,
		sessionsEnded:       sessionsEnded,
		sessionStoreLatency: sessionStoreLatency,
		sourceFetchDuration: sourceFetchDuration,
		sourceRecords:       sourceRecords,
		intentsByType:       make(map[string]uint64),
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
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

// RecordIntent counts one applied intent.
func (m *MetricsService) RecordIntent(intentType string) {
	if m == nil {
		return
	}
	m.intentsTotal.WithLabelValues(intentType).Inc()
	atomic.AddUint64(&m.intentCount, 1)
	m.mu.Lock()
	m.intentsByType[intentType]++
	m.mu.Unlock()
}

// RecordSessionCreated counts a new table session.
func (m *MetricsService) RecordSessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
	atomic.AddUint64(&m.createdCount, 1)
}

// RecordSessionEnded counts an explicitly closed table session.
func (m *MetricsService) RecordSessionEnded() {
	if m == nil {
		return
	}
	m.sessionsEnded.Inc()
	atomic.AddUint64(&m.endedCount, 1)
}

// ObserveSessionStore records the latency of one session store call.
func (m *MetricsService) ObserveSessionStore(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.sessionStoreLatency.WithLabelValues(op).Observe(duration.Seconds())
	atomic.AddUint64(&m.storeOpCount, 1)
	atomic.AddUint64(&m.storeOpDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveSourceFetch records the outcome of the initial member fetch.
func (m *MetricsService) ObserveSourceFetch(source string, records int, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		records = 0
	}
	m.sourceFetchDuration.WithLabelValues(source, status).Observe(duration.Seconds())
	m.sourceRecords.Set(float64(records))
	atomic.StoreInt64(&m.sourceRecordCount, int64(records))
	m.sourceFetchOK.Store(err == nil)
}

// Snapshot returns aggregated metrics for the system metrics endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{IntentsByType: map[string]uint64{}}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	storeOps := atomic.LoadUint64(&m.storeOpCount)
	storeDuration := atomic.LoadUint64(&m.storeOpDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgStoreMs float64
	if storeOps > 0 {
		avgStoreMs = float64(storeDuration) / float64(storeOps) / float64(time.Millisecond)
	}

	m.mu.Lock()
	byType := make(map[string]uint64, len(m.intentsByType))
	for k, v := range m.intentsByType {
		byType[k] = v
	}
	m.mu.Unlock()

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		IntentsTotal:             atomic.LoadUint64(&m.intentCount),
		IntentsByType:            byType,
		SessionsCreated:          atomic.LoadUint64(&m.createdCount),
		SessionsEnded:            atomic.LoadUint64(&m.endedCount),
		SessionStoreOps:          storeOps,
		AverageSessionStoreMs:    avgStoreMs,
		SourceRecords:            int(atomic.LoadInt64(&m.sourceRecordCount)),
		SourceFetchOK:            m.sourceFetchOK.Load(),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
