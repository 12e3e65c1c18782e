package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors(t *testing.T) {
	m := New()

	m.RPCRequests.WithLabelValues("/splitledger.v1.LedgerService/CreateExpense", "ok").Inc()
	m.ExpensesRecorded.Inc()
	m.ExpensesRecorded.Inc()
	m.SettlementsRecorded.WithLabelValues("pending").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExpensesRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("/splitledger.v1.LedgerService/CreateExpense", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SettlementsRecorded.WithLabelValues("pending")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ExpensesRecorded.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "splitledger_expenses_recorded_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
