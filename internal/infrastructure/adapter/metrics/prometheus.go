package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// PrometheusRecorder exports domain and HTTP measurements to Prometheus
type PrometheusRecorder struct {
	registry *prometheus.Registry

	transactionsTotal   *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	historyDuration     prometheus.Histogram
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var _ core.MetricsRecorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers the ledger collectors on a fresh registry
// together with the Go runtime and process collectors
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &PrometheusRecorder{
		registry: registry,
		transactionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transaction requests processed, labeled by kind and outcome",
		}, []string{"kind", "outcome"}),
		transactionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transaction_duration_seconds",
			Help:      "Time spent applying a transaction request, including the database round trips",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
		historyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "history_query_duration_seconds",
			Help:      "Time spent loading a page of transaction history",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed, labeled by status code",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP requests",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
	}
}

// Registry exposes the registry for the /metrics handler
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveTransaction records one processed request by kind and outcome
func (r *PrometheusRecorder) ObserveTransaction(kind string, outcome string, duration time.Duration) {
	r.transactionsTotal.WithLabelValues(kind, outcome).Inc()
	if duration > 0 {
		r.transactionDuration.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

// ObserveHistoryQuery records one history page lookup
func (r *PrometheusRecorder) ObserveHistoryQuery(duration time.Duration) {
	r.historyDuration.Observe(duration.Seconds())
}

// ObserveHTTPRequest records a served request. route is the matched route template.
func (r *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RegisterDBStats exports connection pool statistics of db
func (r *PrometheusRecorder) RegisterDBStats(db *sql.DB, name string) error {
	return r.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// NoopRecorder discards measurements
type NoopRecorder struct{}

// NewNoopRecorder creates a recorder that discards everything
func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) ObserveTransaction(string, string, time.Duration) {}
func (NoopRecorder) ObserveHistoryQuery(time.Duration) {}
func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
