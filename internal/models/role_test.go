package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func permissionSet(role Role) map[Permission]bool {
	set := make(map[Permission]bool)
	for _, p := range role.Permissions() {
		set[p] = true
	}
	return set
}

func TestRoleHierarchyIsStrictSupersets(t *testing.T) {
	adminPerms := permissionSet(RoleAdmin)
	managerPerms := permissionSet(RoleManager)
	userPerms := permissionSet(RoleUser)

	for p := range managerPerms {
		assert.True(t, adminPerms[p], "admin missing manager permission %s", p)
	}
	for p := range userPerms {
		assert.True(t, managerPerms[p], "manager missing user permission %s", p)
	}

	assert.Greater(t, len(adminPerms), len(managerPerms))
	assert.Greater(t, len(managerPerms), len(userPerms))
	assert.Len(t, adminPerms, 10)
	assert.Len(t, userPerms, 2)
}

func TestRoleAuthorities(t *testing.T) {
	authorities := RoleManager.Authorities()
	assert.Contains(t, authorities, "ROLE_MANAGER")
	assert.Contains(t, authorities, "manager:create")
	assert.Contains(t, authorities, "user:read")
	assert.NotContains(t, authorities, "admin:read")
}

func TestHasAuthority(t *testing.T) {
	assert.True(t, RoleAdmin.HasAuthority("manager:create"))
	assert.True(t, RoleAdmin.HasAuthority("ROLE_ADMIN"))
	assert.False(t, RoleAdmin.HasAuthority("ROLE_MANAGER"))
	assert.True(t, RoleUser.HasAuthority("user:update"))
	assert.False(t, RoleUser.HasAuthority("manager:read"))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("admin").Valid())
}
