package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the token payload the client reads. The backend
// signs the token; the client never holds the key, so decoding skips
// signature verification and trusts only the expiry check. A token that
// fails the expiry check is worthless regardless of its signature.
type Claims struct {
	Role Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var errNoExpiry = errors.New("token has no expiry claim")

// decodeClaims parses the three-part dot-delimited token and decodes the
// payload segment. Any structural, base64, or JSON failure is reported as
// an error, never a panic: a garbage token means "no session".
func decodeClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// checkExpiry returns nil only when the expiry claim exists and is strictly
// in the future.
func checkExpiry(claims *Claims, now time.Time) error {
	if claims.ExpiresAt == nil {
		return errNoExpiry
	}
	if !claims.ExpiresAt.Time.After(now) {
		return jwt.ErrTokenExpired
	}
	return nil
}
