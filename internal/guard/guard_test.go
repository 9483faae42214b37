package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/session"
)

func newGuardHarness(t *testing.T, handler http.Handler) (*Guard, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	values, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	sessionStore := session.NewStore(values)

	client := api.NewForTesting(server.URL, server.Client(), api.Dependencies{
		Session:  sessionStore,
		Loading:  loading.NewCounter(),
		Notifier: notify.NewInMemoryNotifier(),
	})
	return New(sessionStore, client, nil), sessionStore
}

func storeToken(t *testing.T, store *session.Store, role session.Role) {
	t.Helper()
	claims := session.Claims{Role: role}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	require.NoError(t, store.SetToken(token))
}

func TestRequireLoginWithoutToken(t *testing.T) {
	g, _ := newGuardHarness(t, http.NotFoundHandler())
	assert.Equal(t, DecisionUnauthorized, g.RequireLogin())
}

func TestRequireRole(t *testing.T) {
	g, store := newGuardHarness(t, http.NotFoundHandler())
	storeToken(t, store, session.RoleUser)

	assert.Equal(t, DecisionAllow, g.RequireRole(session.NewRoleSet(session.RoleUser)))
	assert.Equal(t, DecisionForbidden, g.RequireRole(session.NewRoleSet(session.RoleAdmin)))
}

func TestConfirmAllowsMatchingBackendRole(t *testing.T) {
	g, store := newGuardHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"message":"ok","data":{"_id":"1","role":"Admin"}}`))
	}))
	storeToken(t, store, session.RoleAdmin)

	decision := g.Confirm(context.Background(), session.NewRoleSet(session.RoleAdmin, session.RoleSuperAdmin))
	assert.Equal(t, DecisionAllow, decision)
}

func TestConfirmUnauthorizedClearsToken(t *testing.T) {
	g, store := newGuardHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"message":"Token revoked"}`))
	}))
	storeToken(t, store, session.RoleAdmin)

	decision := g.Confirm(context.Background(), session.NewRoleSet(session.RoleAdmin))
	assert.Equal(t, DecisionUnauthorized, decision)

	_, ok := store.Token()
	assert.False(t, ok, "a 401 must clear the stored token")
}

func TestConfirmForbiddenKeepsToken(t *testing.T) {
	g, store := newGuardHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
		writer.Write([]byte(`{"message":"Not yours"}`))
	}))
	storeToken(t, store, session.RoleAdmin)

	decision := g.Confirm(context.Background(), session.NewRoleSet(session.RoleAdmin))
	assert.Equal(t, DecisionForbidden, decision)

	_, ok := store.Token()
	assert.True(t, ok, "a 403 must not clear the stored token")
}

func TestConfirmDemotesRoleDrift(t *testing.T) {
	// Local token claims SuperAdmin but the backend says User.
	g, store := newGuardHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"message":"ok","data":{"_id":"1","role":"User"}}`))
	}))
	storeToken(t, store, session.RoleSuperAdmin)

	decision := g.Confirm(context.Background(), session.NewRoleSet(session.RoleSuperAdmin))
	assert.Equal(t, DecisionForbidden, decision)
}

func TestConfirmShortCircuitsOnLocalRole(t *testing.T) {
	var requests int
	g, store := newGuardHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		writer.Write([]byte(`{"message":"ok","data":{"_id":"1","role":"User"}}`))
	}))
	storeToken(t, store, session.RoleUser)

	decision := g.Confirm(context.Background(), session.NewRoleSet(session.RoleSuperAdmin))
	assert.Equal(t, DecisionForbidden, decision)
	assert.Zero(t, requests, "a locally forbidden role must not hit the backend")
}
