package models

// Permission represents a specific action a role is allowed to perform
type Permission string

const (
	PermissionAdminRead   Permission = "admin:read"
	PermissionAdminCreate Permission = "admin:create"
	PermissionAdminUpdate Permission = "admin:update"
	PermissionAdminDelete Permission = "admin:delete"

	PermissionManagerRead   Permission = "manager:read"
	PermissionManagerCreate Permission = "manager:create"
	PermissionManagerUpdate Permission = "manager:update"
	PermissionManagerDelete Permission = "manager:delete"

	PermissionUserRead   Permission = "user:read"
	PermissionUserUpdate Permission = "user:update"
)

// Role represents a user role. The three roles form a strict privilege
// hierarchy: ADMIN > MANAGER > USER.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// rolePermissions is the static role -> permission mapping, fixed at compile
// time. There is no runtime mutation path.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAdminRead, PermissionAdminCreate, PermissionAdminUpdate, PermissionAdminDelete,
		PermissionManagerRead, PermissionManagerCreate, PermissionManagerUpdate, PermissionManagerDelete,
		PermissionUserRead, PermissionUserUpdate,
	},
	RoleManager: {
		PermissionManagerRead, PermissionManagerCreate, PermissionManagerUpdate, PermissionManagerDelete,
		PermissionUserRead, PermissionUserUpdate,
	},
	RoleUser: {
		PermissionUserRead, PermissionUserUpdate,
	},
}

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the permission set owned by the role
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Authorities returns the role's permission strings plus the "ROLE_<name>"
// marker, used by the transport layer for route gating
func (r Role) Authorities() []string {
	perms := rolePermissions[r]
	authorities := make([]string, 0, len(perms)+1)
	for _, p := range perms {
		authorities = append(authorities, string(p))
	}
	authorities = append(authorities, "ROLE_"+string(r))
	return authorities
}

// HasAuthority checks whether the role carries the given authority string
func (r Role) HasAuthority(authority string) bool {
	if authority == "ROLE_"+string(r) {
		return true
	}
	for _, p := range rolePermissions[r] {
		if string(p) == authority {
			return true
		}
	}
	return false
}
