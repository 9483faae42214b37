package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/session"
)

func newRegistryHarness(t *testing.T, handler http.Handler) (*Queries, *Mutations, *Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	values, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	client := api.NewForTesting(server.URL, server.Client(), api.Dependencies{
		Session:  session.NewStore(values),
		Loading:  loading.NewCounter(),
		Notifier: notify.NewInMemoryNotifier(),
	})
	store := NewStore(nil)
	return NewQueries(client, store), NewMutations(client, store), store
}

func TestQueriesServeFromCacheUntilInvalidated(t *testing.T) {
	var receiptFetches atomic.Int32
	queries, mutations, _ := newRegistryHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/receipt/my":
			receiptFetches.Add(1)
			writer.Write([]byte(`{"message":"ok","data":[{"_id":"r1","amount":40000,"status":"pending"}]}`))
		case "/api/v1/receipt/upload":
			writer.Write([]byte(`{"message":"Receipt uploaded"}`))
		default:
			http.NotFound(writer, request)
		}
	}))

	ctx := context.Background()
	first, err := queries.Receipts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = queries.Receipts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), receiptFetches.Load(), "second read must hit the cache")

	// A successful upload invalidates the receipts tag.
	_, err = mutations.UploadReceipt(ctx, "march.png", strings.NewReader("png-bytes"), 40000)
	require.NoError(t, err)

	_, err = queries.Receipts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), receiptFetches.Load(), "upload must force a refetch")
}

func TestFailedMutationDoesNotInvalidate(t *testing.T) {
	var userFetches atomic.Int32
	queries, mutations, _ := newRegistryHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.URL.Path == "/api/v1/superadmin/users":
			userFetches.Add(1)
			writer.Write([]byte(`{"message":"ok","data":[{"_id":"u1","role":"User"}]}`))
		case request.Method == http.MethodDelete:
			writer.WriteHeader(http.StatusConflict)
			writer.Write([]byte(`{"message":"User has active plans"}`))
		default:
			http.NotFound(writer, request)
		}
	}))

	ctx := context.Background()
	_, err := queries.SuperAdminUsers(ctx)
	require.NoError(t, err)

	_, err = mutations.DeleteUser(ctx, "u1", "cleanup")
	require.Error(t, err)

	_, err = queries.SuperAdminUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), userFetches.Load(), "failed delete must leave the cache intact")
}

func TestApproveReceiptInvalidatesDashboardToo(t *testing.T) {
	var invalidated []Tag
	queries, mutations, store := newRegistryHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/dashboard":
			writer.Write([]byte(`{"totalAmount":100}`))
		default:
			writer.Write([]byte(`{"message":"Approved"}`))
		}
	}))
	store.Subscribe(func(tags []Tag) { invalidated = append(invalidated, tags...) })

	ctx := context.Background()
	_, err := queries.Dashboard(ctx)
	require.NoError(t, err)

	_, err = mutations.ApproveReceipt(ctx, "r1", "looks right")
	require.NoError(t, err)

	assert.Contains(t, invalidated, TagDashboard)
	assert.Contains(t, invalidated, TagPendingReceipts)
	assert.Contains(t, invalidated, TagReceipts)
}
