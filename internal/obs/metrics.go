package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Ledger-side counters. Incremented by the API layer after an
	// operation is accepted, labelled with the entry kind.
	transactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_transactions_total",
			Help: "Accepted ledger operations by entry kind.",
		},
		[]string{"kind"},
	)

	ticketsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_helpdesk_tickets_total",
			Help: "Helpdesk tickets filed by category.",
		},
		[]string{"category"},
	)
)

// Init registers all metrics with the default registry.
func Init() {
	prometheus.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration,
		transactionsTotal, ticketsTotal)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// CountTransaction records an accepted ledger operation.
func CountTransaction(kind string) {
	transactionsTotal.WithLabelValues(kind).Inc()
}

// CountTicket records a filed helpdesk ticket.
func CountTicket(category string) {
	ticketsTotal.WithLabelValues(category).Inc()
}

// CanonicalPath collapses per-account and per-token path segments so
// metric labels stay low-cardinality.
func CanonicalPath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if rest, ok := strings.CutPrefix(p, "/v1/accounts/"); ok && rest != "" {
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/v1/accounts/:number/" + rest[i+1:]
		}
		return "/v1/accounts/:number"
	}
	if rest, ok := strings.CutPrefix(p, "/v1/withdrawals/"); ok {
		if strings.HasSuffix(rest, "/confirmation") {
			return "/v1/withdrawals/:token/confirmation"
		}
	}
	return p
}

// Instrument wraps a handler with RPS/latency/in-flight measurement.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for labelling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming handlers working behind the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
