package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/smart-resume/internal/generation"
	"github.com/jonathan/smart-resume/internal/pipeline"
)

// Outcome label values.
const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Metrics holds the server's prometheus collectors.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	documents       *prometheus.CounterVec
	documentBytes   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"method", "path"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_generations_total",
				Help: "Resume text generations by outcome.",
			},
			[]string{"outcome"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_documents_total",
				Help: "Resume documents rendered and stored, by outcome.",
			},
			[]string{"outcome"},
		),
		documentBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_document_bytes",
				Help:    "Size of stored resume documents.",
				Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration, m.generations, m.documents, m.documentBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveResult records the generation and render outcomes of one run.
func (m *Metrics) ObserveResult(result *pipeline.Result) {
	switch {
	case result.GenerationErr == nil:
		m.generations.WithLabelValues(outcomeSuccess).Inc()
	case errors.Is(result.GenerationErr, generation.ErrEmptyResponse):
		m.generations.WithLabelValues(outcomeEmpty).Inc()
	default:
		m.generations.WithLabelValues(outcomeError).Inc()
	}

	if result.Downloadable() {
		m.documents.WithLabelValues(outcomeSuccess).Inc()
		m.documentBytes.Observe(float64(result.Document.Size))
	} else {
		m.documents.WithLabelValues(outcomeError).Inc()
	}
}

// Middleware counts requests by method, route pattern and status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Exclude /metrics from being counted
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// r.Pattern is set by the mux once a route matches.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}

		m.requestCount.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush lets streaming handlers flush through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
