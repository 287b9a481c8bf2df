package models

// Role is a fixed capability level granted on a checklist, either implicitly
// (the author is OWNER) or through a share row.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// Permission is one of the fixed set of actions a caller may request on a
// checklist.
type Permission string

const (
	PermissionRead      Permission = "read"
	PermissionCreate    Permission = "create"
	PermissionUpdate    Permission = "update"
	PermissionDelete    Permission = "delete"
	PermissionSubscribe Permission = "subscribe"
	PermissionShare     Permission = "share"
)

// rolePermissions is the fixed role -> permission table.
// OWNER is a superset of EDITOR, which is a superset of VIEWER.
// Only OWNER ever holds the share permission.
var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionRead,
		PermissionCreate,
		PermissionUpdate,
		PermissionDelete,
		PermissionSubscribe,
		PermissionShare,
	},
	RoleEditor: {
		PermissionRead,
		PermissionCreate,
		PermissionUpdate,
		PermissionSubscribe,
	},
	RoleViewer: {
		PermissionRead,
		PermissionSubscribe,
	},
}

// ParseRole maps a stored wire value to a Role. Anything other than the three
// known values is not a valid role and yields ok=false, which callers must
// treat as "no role".
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleEditor, RoleViewer:
		return Role(s), true
	default:
		return "", false
	}
}

// Can reports whether the role's permission set contains the requested
// permission.
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
