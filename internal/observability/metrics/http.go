package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics holds the API-side registry: generic request metrics plus
// counters for the ingestion and study-session domains.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsIngested *prometheus.CounterVec
	uploadsRejected   *prometheus.CounterVec
	extractDuration   *prometheus.HistogramVec
	promptsServed     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratia",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socratia",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "socratia",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsIngested := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratia",
			Subsystem: "ingest",
			Name:      "documents_total",
			Help:      "Total documents successfully ingested by media type.",
		},
		[]string{"service", "media_type"},
	)
	uploadsRejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratia",
			Subsystem: "ingest",
			Name:      "rejected_total",
			Help:      "Total rejected uploads by reason.",
		},
		[]string{"service", "reason"},
	)
	extractDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socratia",
			Subsystem: "ingest",
			Name:      "extract_duration_seconds",
			Help:      "Upload pipeline duration in seconds by media type.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "media_type"},
	)
	promptsServed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socratia",
			Subsystem: "study",
			Name:      "prompts_total",
			Help:      "Total study-session prompts served by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsIngested,
		uploadsRejected,
		extractDuration,
		promptsServed,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		documentsIngested: documentsIngested,
		uploadsRejected:   uploadsRejected,
		extractDuration:   extractDuration,
		promptsServed:     promptsServed,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/documents/"):
		return "/api/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordDocumentIngested(service, mediaType string, duration time.Duration) {
	m.documentsIngested.WithLabelValues(service, mediaType).Inc()
	m.extractDuration.WithLabelValues(service, mediaType).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordUploadRejected(service, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.uploadsRejected.WithLabelValues(service, reason).Inc()
}

func (m *HTTPServerMetrics) RecordPromptServed(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.promptsServed.WithLabelValues(service, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
