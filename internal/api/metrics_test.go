package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/observability"
	"github.com/spec-kit/easybuy-tracker/internal/session"
)

func TestRequestAndErrorCountersRecorded(t *testing.T) {
	t.Parallel()
	harness := newTestHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/v1/user/getcurrentuser" {
			writer.Write([]byte(`{"message":"ok","data":{"_id":"1","role":"User"}}`))
			return
		}
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"message":"missing"}`))
	}))

	if _, err := harness.client.GetCurrentUser(context.Background()); err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if _, err := harness.client.GetDashboard(context.Background(), SuppressNotify()); err == nil {
		t.Fatal("expected the dashboard request to fail")
	}

	if got := harness.metrics.RequestCount("/api/v1/user/getcurrentuser", http.MethodGet, http.StatusOK); got != 1 {
		t.Errorf("request count = %d, want 1", got)
	}
	if got := harness.metrics.RequestCount("/api/dashboard", http.MethodGet, http.StatusNotFound); got != 1 {
		t.Errorf("failed request count = %d, want 1", got)
	}
	if got := harness.metrics.ErrorCount("/api/dashboard", http.MethodGet, "NOT_FOUND"); got != 1 {
		t.Errorf("error count = %d, want 1", got)
	}
	if got := harness.metrics.ErrorCount("/api/v1/user/getcurrentuser", http.MethodGet, "NOT_FOUND"); got != 0 {
		t.Errorf("error count for successful request = %d, want 0", got)
	}
}

func TestTransportFailureRecordsErrorCounter(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	values, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening local store: %v", err)
	}
	metrics := observability.NewMetrics()
	client := NewForTesting(server.URL, &http.Client{Timeout: time.Second}, Dependencies{
		Session: session.NewStore(values),
		Loading: loading.NewCounter(),
		Metrics: metrics,
	})

	if _, err := client.GetCurrentUser(context.Background()); err == nil {
		t.Fatal("expected a transport error")
	}
	if got := metrics.ErrorCount("/api/v1/user/getcurrentuser", http.MethodGet, "TRANSPORT"); got != 1 {
		t.Errorf("transport error count = %d, want 1", got)
	}
}
