package permission

import (
	"errors"
	"fmt"

	"mall/models"

	"gorm.io/gorm"
)

var (
	// ErrStoreUnavailable 权限数据源不可用（连接失败、获取连接超时等基础设施故障）
	ErrStoreUnavailable = errors.New("权限数据源不可用")
	// ErrPrincipalNotFound 用户不存在（token 有效但用户已被删除）
	ErrPrincipalNotFound = errors.New("用户不存在")
)

// Store 权限存储：按用户 ID 查询实时授权集合
type Store interface {
	// Lookup 返回用户的授权集合（权限键 → 是否授予）
	Lookup(userID uint) (map[string]bool, error)
	// LookupPrincipal 返回携带授权集合的完整主体
	LookupPrincipal(userID uint) (Principal, error)
}

// GormStore 基于 gorm 的权限存储实现：用户 → 角色 → 角色权限
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 权限存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Lookup 实现 Store 接口
func (s *GormStore) Lookup(userID uint) (map[string]bool, error) {
	p, err := s.LookupPrincipal(userID)
	if err != nil {
		return nil, err
	}
	return p.Granted, nil
}

// LookupPrincipal 实现 Store 接口
func (s *GormStore) LookupPrincipal(userID uint) (Principal, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	granted, err := s.grantsForRole(user.RoleID)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		Granted:  granted,
	}, nil
}

// grantsForRole 查询角色的授权集合，无角色返回空集合
func (s *GormStore) grantsForRole(roleID *uint) (map[string]bool, error) {
	granted := make(map[string]bool)
	if roleID == nil {
		return granted, nil
	}

	var rows []models.RolePermission
	if err := s.db.Where("role_id = ?", *roleID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, row := range rows {
		// 忽略目录中不存在的键，容忍目录与存储之间的版本漂移
		if _, err := KindOf(row.PermissionKey); err != nil {
			continue
		}
		granted[row.PermissionKey] = row.Allowed
	}
	return granted, nil
}
