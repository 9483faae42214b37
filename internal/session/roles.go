package session

// Role is the access level carried in the session token. The backend
// defines the set; the client only ever reads it from decoded claims so
// that local state can never diverge from what the token says.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// RoleSet is an allowed-role membership check, shared by route guards and
// menu visibility so the permission mapping lives in one place.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the allowed roles. An empty set allows any
// authenticated caller.
func NewRoleSet(allowed ...Role) RoleSet {
	set := make(RoleSet, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}
	return set
}

// Allows reports whether role may pass this set.
func (s RoleSet) Allows(role Role) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[role]
	return ok
}
