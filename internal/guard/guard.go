// Package guard decides whether the current session may enter a page.
// Synchronous guards answer from the locally stored token; the
// confirming guard additionally asks the backend to vouch for the
// session before letting a sensitive page render.
package guard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/session"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// DecisionChecking means a backend confirmation is still in flight.
	DecisionChecking Decision = iota
	// DecisionAllow lets the page render.
	DecisionAllow
	// DecisionUnauthorized sends the caller to the login page.
	DecisionUnauthorized
	// DecisionForbidden shows the access-denied page. The session stays
	// intact.
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionChecking:
		return "checking"
	case DecisionAllow:
		return "allow"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Guard evaluates page access against the stored session and, when
// asked, the backend.
type Guard struct {
	session *session.Store
	client  *api.Client
	logger  *zap.Logger
}

// New returns a guard over the given session store and API client.
func New(sessionStore *session.Store, client *api.Client, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{session: sessionStore, client: client, logger: logger}
}

// RequireLogin answers from local state only. An expired or malformed
// token counts as logged out because the session store purges it on
// read.
func (g *Guard) RequireLogin() Decision {
	if !g.session.IsLoggedIn() {
		return DecisionUnauthorized
	}
	return DecisionAllow
}

// RequireRole answers from the role claim of the stored token. A
// missing session is unauthorized; a valid session with a role outside
// the allowed set is forbidden.
func (g *Guard) RequireRole(allowed session.RoleSet) Decision {
	role, ok := g.session.Role()
	if !ok {
		return DecisionUnauthorized
	}
	if !allowed.Allows(role) {
		return DecisionForbidden
	}
	return DecisionAllow
}

// Confirm verifies the session against the backend. A 401 clears the
// stored token so subsequent synchronous checks agree with the backend.
// A 403 leaves the token alone. Any other failure, including transport
// errors, is reported as unauthorized without touching the token so a
// flaky network cannot log the user out.
func (g *Guard) Confirm(ctx context.Context, allowed session.RoleSet) Decision {
	if decision := g.RequireRole(allowed); decision != DecisionAllow {
		return decision
	}

	user, err := g.client.GetCurrentUser(ctx, api.SuppressNotify())
	if err != nil {
		if util.IsCanceled(err) {
			return DecisionChecking
		}
		if util.IsUnauthorized(err) {
			if clearErr := g.session.ClearToken(); clearErr != nil {
				g.logger.Warn("clearing rejected token", zap.Error(clearErr))
			}
			return DecisionUnauthorized
		}
		if requestErr, ok := util.AsRequestError(err); ok && requestErr.HTTPStatus == http.StatusForbidden {
			return DecisionForbidden
		}
		g.logger.Warn("session confirmation failed", zap.Error(err))
		return DecisionUnauthorized
	}

	if !allowed.Allows(session.Role(user.Role)) {
		return DecisionForbidden
	}
	return DecisionAllow
}
