package auth

// RBAC roles for the console.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// Permissions per role.
var Permissions = map[string][]string{
	RoleAdmin: {
		"campaigns:read",
		"campaigns:write",
		"campaigns:delete",
		"creatives:read",
		"creatives:write",
		"creatives:delete",
		"approvals:read",
		"approvals:decide",
		"analytics:read",
		"analytics:ingest",
		"system:admin",
	},
	RoleManager: {
		"campaigns:read",
		"campaigns:write",
		"creatives:read",
		"creatives:write",
		"approvals:read",
		"analytics:read",
	},
	RoleViewer: {
		"campaigns:read",
		"creatives:read",
		"analytics:read",
	},
}

// HasPermission reports whether the role grants the permission.
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction reports whether the token holder may perform the action.
func CanPerformAction(claims *Claims, permission string) bool {
	return HasPermission(claims.Role, permission)
}

// IsAdmin reports whether the token holder is an administrator.
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}
