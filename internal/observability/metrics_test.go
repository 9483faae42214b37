package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCountsByPathMethodStatus(t *testing.T) {
	t.Parallel()
	metrics := NewMetrics()

	metrics.RecordRequest("/api/dashboard", http.MethodGet, http.StatusOK, 12*time.Millisecond)
	metrics.RecordRequest("/api/dashboard", http.MethodGet, http.StatusOK, 9*time.Millisecond)
	metrics.RecordRequest("/api/dashboard", http.MethodGet, http.StatusNotFound, 4*time.Millisecond)
	metrics.RecordError("/api/dashboard", http.MethodGet, "NOT_FOUND")

	assert.Equal(t, int64(2), metrics.RequestCount("/api/dashboard", http.MethodGet, http.StatusOK))
	assert.Equal(t, int64(1), metrics.RequestCount("/api/dashboard", http.MethodGet, http.StatusNotFound))
	assert.Equal(t, int64(1), metrics.ErrorCount("/api/dashboard", http.MethodGet, "NOT_FOUND"))
	assert.Equal(t, int64(0), metrics.RequestCount("/api/dashboard", http.MethodPost, http.StatusOK))
}

func TestNilMetricsRecordsNothing(t *testing.T) {
	t.Parallel()
	var metrics *Metrics

	metrics.RecordRequest("/p", http.MethodGet, http.StatusOK, time.Millisecond)
	metrics.RecordError("/p", http.MethodGet, "TRANSPORT")

	assert.Equal(t, int64(0), metrics.RequestCount("/p", http.MethodGet, http.StatusOK))
	assert.Equal(t, int64(0), metrics.ErrorCount("/p", http.MethodGet, "TRANSPORT"))
}
