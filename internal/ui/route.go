package ui

import "github.com/spec-kit/easybuy-tracker/internal/session"

// Route identifies a page of the application.
type Route int

const (
	RouteLogin Route = iota
	RouteDashboard
	RouteItems
	RouteNewItem
	RouteReceipts
	RouteUploadReceipt
	RouteApprovals
	RouteCreateUser
	RouteRegisterAdmin
	RouteSuperAdminUsers
	RouteSuperAdminStats
	RouteSuperAdminPricing
	RouteDateMaintenance
	RoutePublicRequests
	RoutePublicForm
	RouteVerify
	RouteProfile
	RouteForbidden
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "Login"
	case RouteDashboard:
		return "Dashboard"
	case RouteItems:
		return "My Items"
	case RouteNewItem:
		return "New Item"
	case RouteReceipts:
		return "My Receipts"
	case RouteUploadReceipt:
		return "Upload Receipt"
	case RouteApprovals:
		return "Pending Receipts"
	case RouteCreateUser:
		return "Create User"
	case RouteRegisterAdmin:
		return "Create Admin"
	case RouteSuperAdminUsers:
		return "All Users"
	case RouteSuperAdminStats:
		return "Login Stats"
	case RouteSuperAdminPricing:
		return "Pricing"
	case RouteDateMaintenance:
		return "Date Maintenance"
	case RoutePublicRequests:
		return "Public Requests"
	case RoutePublicForm:
		return "Request a Device"
	case RouteVerify:
		return "Verify Request"
	case RouteProfile:
		return "Profile"
	case RouteForbidden:
		return "Access Denied"
	default:
		return "Unknown"
	}
}

// publicRoutes need no session at all.
var publicRoutes = map[Route]bool{
	RouteLogin:      true,
	RoutePublicForm: true,
	RouteVerify:     true,
	RouteForbidden:  true,
}

// routeRoles maps each protected route to the roles allowed in. A
// route absent from both maps admits any authenticated caller.
var routeRoles = map[Route]session.RoleSet{
	RouteDashboard:         session.NewRoleSet(session.RoleUser),
	RouteItems:             session.NewRoleSet(session.RoleUser),
	RouteReceipts:          session.NewRoleSet(session.RoleUser),
	RouteUploadReceipt:     session.NewRoleSet(session.RoleUser),
	RouteNewItem:           session.NewRoleSet(session.RoleAdmin, session.RoleSuperAdmin),
	RouteApprovals:         session.NewRoleSet(session.RoleAdmin, session.RoleSuperAdmin),
	RouteCreateUser:        session.NewRoleSet(session.RoleAdmin, session.RoleSuperAdmin),
	RouteRegisterAdmin:     session.NewRoleSet(session.RoleSuperAdmin),
	RouteSuperAdminUsers:   session.NewRoleSet(session.RoleSuperAdmin),
	RouteSuperAdminStats:   session.NewRoleSet(session.RoleSuperAdmin),
	RouteSuperAdminPricing: session.NewRoleSet(session.RoleSuperAdmin),
	RouteDateMaintenance:   session.NewRoleSet(session.RoleSuperAdmin),
	RoutePublicRequests:    session.NewRoleSet(session.RoleSuperAdmin),
}

// confirmedRoutes are re-verified against the backend before the page
// settles, on top of the synchronous token check.
var confirmedRoutes = map[Route]bool{
	RouteApprovals:         true,
	RouteCreateUser:        true,
	RouteRegisterAdmin:     true,
	RouteSuperAdminUsers:   true,
	RouteSuperAdminStats:   true,
	RouteSuperAdminPricing: true,
	RouteDateMaintenance:   true,
	RoutePublicRequests:    true,
	RouteNewItem:           true,
}

// homeRoute picks the landing page for a role.
func homeRoute(role session.Role) Route {
	switch role {
	case session.RoleAdmin:
		return RouteApprovals
	case session.RoleSuperAdmin:
		return RouteSuperAdminUsers
	default:
		return RouteDashboard
	}
}
