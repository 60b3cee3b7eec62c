package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTransaction(t *testing.T) {
	recorder := NewPrometheusRecorder()

	recorder.ObserveTransaction("DEPOSIT", "success", 20*time.Millisecond)
	recorder.ObserveTransaction("DEPOSIT", "success", 30*time.Millisecond)
	recorder.ObserveTransaction("TRANSFER", "rejected", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.transactionsTotal.WithLabelValues("DEPOSIT", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.transactionsTotal.WithLabelValues("TRANSFER", "rejected")))

	// Zero durations come from requests rejected before reaching the engine.
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.transactionDuration))
}

func TestObserveHTTPRequest(t *testing.T) {
	recorder := NewPrometheusRecorder()

	recorder.ObserveHTTPRequest("POST", "/api/transactions", 201, 15*time.Millisecond)
	recorder.ObserveHTTPRequest("POST", "/api/transactions", 400, time.Millisecond)

	expected := `
# HELP ledger_http_requests_total Total HTTP requests processed, labeled by status code
# TYPE ledger_http_requests_total counter
ledger_http_requests_total{method="POST",route="/api/transactions",status="201"} 1
ledger_http_requests_total{method="POST",route="/api/transactions",status="400"} 1
`
	require.NoError(t, testutil.CollectAndCompare(recorder.httpRequestsTotal, strings.NewReader(expected)))
}

func TestRegistryGathers(t *testing.T) {
	recorder := NewPrometheusRecorder()
	recorder.ObserveHistoryQuery(5 * time.Millisecond)

	families, err := recorder.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "ledger_history_query_duration_seconds")
	assert.Contains(t, names, "go_goroutines")
}
