package models

import (
	"time"
)

// RolePermission 角色权限授予记录
// PermissionKey 为权限目录中的字符串键，如 order:manage；
// 不在目录内的键在查询时被忽略，允许目录与库表各自演进。
type RolePermission struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RoleID        uint      `json:"role_id" gorm:"not null;uniqueIndex:idx_role_perm,priority:1"`
	PermissionKey string    `json:"permission_key" gorm:"size:50;not null;uniqueIndex:idx_role_perm,priority:2"`
	Allowed       bool      `json:"allowed" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 设置表名
func (RolePermission) TableName() string {
	return "role_permissions"
}
