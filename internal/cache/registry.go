package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/spec-kit/easybuy-tracker/internal/api"
)

// Queries is the read side of the application cache. Every method is a
// read-through lookup: cached while its tags are fresh, refetched after
// a mutation invalidates them. Query fetches suppress the error toast
// so pages can render their own failure state.
type Queries struct {
	client *api.Client
	store  *Store
}

// NewQueries binds the API client's read endpoints to the cache.
func NewQueries(client *api.Client, store *Store) *Queries {
	return &Queries{client: client, store: store}
}

func (q *Queries) CurrentUser(ctx context.Context) (*api.CurrentUser, error) {
	return Fetch(ctx, q.store, "currentUser", []Tag{TagCurrentUser}, func(ctx context.Context) (*api.CurrentUser, error) {
		return q.client.GetCurrentUser(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Profile(ctx context.Context) (*api.Profile, error) {
	return Fetch(ctx, q.store, "profile", []Tag{TagCurrentUser}, func(ctx context.Context) (*api.Profile, error) {
		return q.client.GetProfile(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Dashboard(ctx context.Context) (*api.Dashboard, error) {
	return Fetch(ctx, q.store, "dashboard", []Tag{TagDashboard}, func(ctx context.Context) (*api.Dashboard, error) {
		return q.client.GetDashboard(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Items(ctx context.Context) ([]api.EasyBoughtItem, error) {
	return Fetch(ctx, q.store, "items", []Tag{TagItems}, func(ctx context.Context) ([]api.EasyBoughtItem, error) {
		return q.client.EasyBoughtItems(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Receipts(ctx context.Context) ([]api.ReceiptItem, error) {
	return Fetch(ctx, q.store, "receipts", []Tag{TagReceipts}, func(ctx context.Context) ([]api.ReceiptItem, error) {
		return q.client.MyReceipts(ctx, api.SuppressNotify())
	})
}

func (q *Queries) PendingReceipts(ctx context.Context) ([]api.PendingReceiptItem, error) {
	return Fetch(ctx, q.store, "pendingReceipts", []Tag{TagPendingReceipts}, func(ctx context.Context) ([]api.PendingReceiptItem, error) {
		return q.client.PendingReceipts(ctx, api.SuppressNotify())
	})
}

func (q *Queries) LoginStats(ctx context.Context) (*api.LoginStats, error) {
	return Fetch(ctx, q.store, "loginStats", []Tag{TagSuperAdminStats}, func(ctx context.Context) (*api.LoginStats, error) {
		return q.client.LoginStats(ctx, api.SuppressNotify())
	})
}

func (q *Queries) SuperAdminUsers(ctx context.Context) ([]api.SuperAdminUser, error) {
	return Fetch(ctx, q.store, "superAdminUsers", []Tag{TagSuperAdminUsers}, func(ctx context.Context) ([]api.SuperAdminUser, error) {
		return q.client.SuperAdminUsers(ctx, api.SuppressNotify())
	})
}

func (q *Queries) SuperAdminUsersWithItems(ctx context.Context) ([]api.SuperAdminUserWithItems, error) {
	return Fetch(ctx, q.store, "superAdminUsersWithItems", []Tag{TagSuperAdminUsersWithItems}, func(ctx context.Context) ([]api.SuperAdminUserWithItems, error) {
		return q.client.SuperAdminUsersWithItems(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Pricing(ctx context.Context) (*api.Catalog, error) {
	return Fetch(ctx, q.store, "pricing", []Tag{TagPricing}, func(ctx context.Context) (*api.Catalog, error) {
		return q.client.GetPricing(ctx, api.SuppressNotify())
	})
}

func (q *Queries) Catalog(ctx context.Context) (*api.Catalog, error) {
	return Fetch(ctx, q.store, "catalog", []Tag{TagCatalog}, func(ctx context.Context) (*api.Catalog, error) {
		return q.client.Catalog(ctx, api.SuppressNotify())
	})
}

func (q *Queries) PublicRequests(ctx context.Context, filter api.PublicRequestFilter) (*api.PublicRequestList, error) {
	key := fmt.Sprintf("publicRequests/%s/%s/%d/%d", filter.Status, filter.Search, filter.Page, filter.Limit)
	return Fetch(ctx, q.store, key, []Tag{TagPublicRequests}, func(ctx context.Context) (*api.PublicRequestList, error) {
		return q.client.PublicRequests(ctx, filter, api.SuppressNotify())
	})
}

// Mutations is the write side. Each method forwards to the API client
// and, only when the call succeeds, invalidates the tags whose data it
// changed. Mutations that pages run behind their own inline spinner
// suppress the global loader.
type Mutations struct {
	client *api.Client
	store  *Store
}

// NewMutations binds the API client's write endpoints to the cache.
func NewMutations(client *api.Client, store *Store) *Mutations {
	return &Mutations{client: client, store: store}
}

func (m *Mutations) invalidateOnSuccess(err error, tags ...Tag) {
	if err != nil {
		return
	}
	m.store.Invalidate(tags...)
}

func (m *Mutations) RegisterAdmin(ctx context.Context, request api.CreateAccountRequest) (string, error) {
	message, err := m.client.RegisterAdmin(ctx, request)
	m.invalidateOnSuccess(err, TagSuperAdminUsers, TagSuperAdminUsersWithItems, TagSuperAdminStats)
	return message, err
}

func (m *Mutations) CreateUser(ctx context.Context, request api.CreateAccountRequest) (string, error) {
	message, err := m.client.CreateUser(ctx, request)
	m.invalidateOnSuccess(err, TagSuperAdminUsers, TagSuperAdminUsersWithItems, TagSuperAdminStats)
	return message, err
}

func (m *Mutations) CreateEasyBoughtItem(ctx context.Context, request api.CreateItemRequest) (string, error) {
	message, err := m.client.CreateEasyBoughtItem(ctx, request)
	m.invalidateOnSuccess(err, TagItems, TagDashboard, TagSuperAdminUsersWithItems)
	return message, err
}

func (m *Mutations) UploadReceipt(ctx context.Context, filename string, reader io.Reader, amount float64) (string, error) {
	message, err := m.client.UploadReceipt(ctx, filename, reader, amount, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagReceipts, TagPendingReceipts)
	return message, err
}

func (m *Mutations) ApproveReceipt(ctx context.Context, receiptID, reason string) (string, error) {
	message, err := m.client.ApproveReceipt(ctx, receiptID, reason, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagPendingReceipts, TagReceipts, TagDashboard)
	return message, err
}

func (m *Mutations) DeleteUser(ctx context.Context, userID, reason string) (string, error) {
	message, err := m.client.DeleteUser(ctx, userID, reason, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagSuperAdminUsers, TagSuperAdminUsersWithItems, TagSuperAdminStats)
	return message, err
}

func (m *Mutations) UpdatePricing(ctx context.Context, updates []api.PricingUpdate) (string, error) {
	message, err := m.client.UpdatePricing(ctx, updates)
	m.invalidateOnSuccess(err, TagPricing, TagCatalog)
	return message, err
}

func (m *Mutations) SubmitPublicRequest(ctx context.Context, request api.CreatePublicRequest) (string, error) {
	// Anonymous submissions never feed a cached listing for the caller.
	return m.client.SubmitPublicRequest(ctx, request)
}

func (m *Mutations) ApprovePublicRequest(ctx context.Context, requestID, reason string) (string, error) {
	message, err := m.client.ApprovePublicRequest(ctx, requestID, reason, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagPublicRequests)
	return message, err
}

func (m *Mutations) RejectPublicRequest(ctx context.Context, requestID, reason string) (string, error) {
	message, err := m.client.RejectPublicRequest(ctx, requestID, reason, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagPublicRequests)
	return message, err
}

func (m *Mutations) ConvertPublicRequest(ctx context.Context, requestID string, request api.ConvertPublicRequest) (string, error) {
	message, err := m.client.ConvertPublicRequest(ctx, requestID, request, api.SuppressLoader())
	m.invalidateOnSuccess(err, TagPublicRequests, TagSuperAdminUsers, TagSuperAdminUsersWithItems, TagItems)
	return message, err
}
