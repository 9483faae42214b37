package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/easybuy-tracker/internal/localstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	values, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return NewStore(values)
}

func signedToken(t *testing.T, role Role, expiresAt *time.Time) string {
	t.Helper()
	claims := Claims{Role: role}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestValidTokenIsLoggedInWithRole(t *testing.T) {
	store := newTestStore(t)
	expiry := time.Now().Add(time.Hour)
	require.NoError(t, store.SetToken(signedToken(t, RoleAdmin, &expiry)))

	assert.True(t, store.IsLoggedIn())
	role, ok := store.Role()
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)
}

func TestExpiredTokenIsPurged(t *testing.T) {
	store := newTestStore(t)
	expiry := time.Now().Add(-time.Minute)
	require.NoError(t, store.SetToken(signedToken(t, RoleUser, &expiry)))

	assert.False(t, store.IsLoggedIn())

	_, ok := store.Token()
	assert.False(t, ok, "expired token should be removed from storage")
}

func TestTokenWithoutExpiryIsRejected(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken(signedToken(t, RoleUser, nil)))

	assert.False(t, store.IsLoggedIn())
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestMalformedTokenDoesNotPanic(t *testing.T) {
	store := newTestStore(t)
	for _, token := range []string{
		"garbage",
		"a.b",
		"a.!!!not-base64!!!.c",
		"a.eyJub3QganNvbg.c",
	} {
		require.NoError(t, store.SetToken(token))
		assert.False(t, store.IsLoggedIn(), "token %q should not authenticate", token)
		_, ok := store.Token()
		assert.False(t, ok, "token %q should be purged", token)
	}
}

func TestMissingTokenIsLoggedOut(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.IsLoggedIn())
	_, ok := store.Role()
	assert.False(t, ok)
}

func TestRoleSetAllows(t *testing.T) {
	admins := NewRoleSet(RoleAdmin, RoleSuperAdmin)
	assert.True(t, admins.Allows(RoleAdmin))
	assert.True(t, admins.Allows(RoleSuperAdmin))
	assert.False(t, admins.Allows(RoleUser))

	anyone := NewRoleSet()
	assert.True(t, anyone.Allows(RoleUser))
}
