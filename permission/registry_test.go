package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register("GET", "/admin/users", RequireAny(UserManage))
	reg.Register("PUT", "/admin/roles/:id/permissions", RequireAll(RoleManage, SystemConfig))

	req, ok := reg.Lookup("GET", "/admin/users")
	require.True(t, ok)
	assert.Equal(t, []Kind{UserManage}, req.Permissions)

	// 方法参与键的组成
	_, ok = reg.Lookup("POST", "/admin/users")
	assert.False(t, ok)

	// 未登记的路由
	_, ok = reg.Lookup("GET", "/admin/unknown")
	assert.False(t, ok)

	assert.Equal(t, 2, reg.Len())
}

func TestRegistryOverwrite(t *testing.T) {
	reg := NewRegistry()
	reg.Register("GET", "/admin/users", RequireAny(UserManage))
	reg.Register("GET", "/admin/users", RequireAny(Admin).WithMessage("仅管理员"))

	req, ok := reg.Lookup("GET", "/admin/users")
	require.True(t, ok)
	assert.Equal(t, "仅管理员", req.Message)
	assert.Equal(t, 1, reg.Len())
}
