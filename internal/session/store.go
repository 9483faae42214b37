package session

import (
	"time"

	"github.com/spec-kit/easybuy-tracker/internal/localstore"
)

// TokenKey is the fixed storage key for the session token.
const TokenKey = "easybuytracker_token"

// Store is the single source of truth for "is the caller authenticated"
// and "what role does the caller have". All reads go through the validity
// check; a token that fails it is purged on the spot so a single failed
// check self-heals stale state.
type Store struct {
	values *localstore.Store
	now    func() time.Time
}

// NewStore builds a Store over persistent local state.
func NewStore(values *localstore.Store) *Store {
	return &Store{values: values, now: time.Now}
}

// SetToken persists the token verbatim.
func (s *Store) SetToken(token string) error {
	return s.values.Set(TokenKey, token)
}

// Token returns the persisted token, or false if none is stored.
func (s *Store) Token() (string, bool) {
	return s.values.Get(TokenKey)
}

// ClearToken removes the persisted token.
func (s *Store) ClearToken() error {
	return s.values.Delete(TokenKey)
}

// IsLoggedIn reports whether a stored token exists, decodes, and has an
// expiry strictly in the future. An invalid token is removed as a side
// effect.
func (s *Store) IsLoggedIn() bool {
	_, ok := s.validClaims()
	return ok
}

// Role returns the role claim of a valid stored token, or false when there
// is no valid session. The same purge-on-failure rule as IsLoggedIn applies.
func (s *Store) Role() (Role, bool) {
	claims, ok := s.validClaims()
	if !ok {
		return "", false
	}
	return claims.Role, true
}

func (s *Store) validClaims() (*Claims, bool) {
	token, ok := s.values.Get(TokenKey)
	if !ok || token == "" {
		return nil, false
	}
	claims, err := decodeClaims(token)
	if err != nil {
		_ = s.values.Delete(TokenKey)
		return nil, false
	}
	if err := checkExpiry(claims, s.now()); err != nil {
		_ = s.values.Delete(TokenKey)
		return nil, false
	}
	return claims, true
}
