package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/students", http.StatusOK, 10*time.Millisecond)
	m.ObserveUpstream(http.MethodGet, "/students/list", http.StatusUnauthorized, time.Millisecond)
	m.ObserveSync(SyncOutcomeUnauthorized, time.Millisecond)
	m.RecordForcedLogout("unauthorized")
	m.RecordLocalRecords(models.EntityPayments, 3)
	m.RecordLocalRecords(models.EntityPayments, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/api/v1/students", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.forcedLogouts.WithLabelValues("unauthorized")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.localRecords.WithLabelValues("payments")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "academy_api_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), "academy_sync_duration_seconds")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveUpstream(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveSync(SyncOutcomeSuccess, time.Millisecond)
	m.RecordForcedLogout("x")
	m.RecordLocalRecords(models.EntityContracts, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
