package permission

import (
	"errors"
	"fmt"
	"sort"
)

// Kind 权限种类，闭合枚举。
// 新增权限必须同时补充 kindKeys 与 kindLabels，否则进程启动时 panic。
type Kind int

const (
	Admin Kind = iota
	OrderManage
	LogisticsManage
	AfterSalesManage
	ReviewManage
	InventoryManage
	IncomeManage
	SystemConfig
	UserManage
	RoleManage
	DataExport
	DataImport

	kindCount // 哨兵值，必须始终位于最后
)

// ErrUnknownCapability 未知权限标识
var ErrUnknownCapability = errors.New("未知权限标识")

// kindKeys Kind 到字符串键的映射，字符串键同时用于 token claims 和数据库存储
var kindKeys = map[Kind]string{
	Admin:            "admin",
	OrderManage:      "order:manage",
	LogisticsManage:  "logistics:manage",
	AfterSalesManage: "aftersales:manage",
	ReviewManage:     "review:manage",
	InventoryManage:  "inventory:manage",
	IncomeManage:     "income:manage",
	SystemConfig:     "system:config",
	UserManage:       "user:manage",
	RoleManage:       "role:manage",
	DataExport:       "data:export",
	DataImport:       "data:import",
}

// kindLabels 中文名称，用于后台展示与导出
var kindLabels = map[Kind]string{
	Admin:            "超级管理员",
	OrderManage:      "订单管理",
	LogisticsManage:  "物流管理",
	AfterSalesManage: "售后管理",
	ReviewManage:     "评价管理",
	InventoryManage:  "库存管理",
	IncomeManage:     "收入管理",
	SystemConfig:     "系统配置",
	UserManage:       "用户管理",
	RoleManage:       "角色管理",
	DataExport:       "数据导出",
	DataImport:       "数据导入",
}

var keyKinds map[string]Kind

func init() {
	// 启动时校验映射表的完整性和唯一性，保证枚举与键一一对应
	if len(kindKeys) != int(kindCount) {
		panic(fmt.Sprintf("kindKeys 数量 %d 与枚举数量 %d 不一致", len(kindKeys), kindCount))
	}
	keyKinds = make(map[string]Kind, len(kindKeys))
	for k := Kind(0); k < kindCount; k++ {
		key, ok := kindKeys[k]
		if !ok || key == "" {
			panic(fmt.Sprintf("权限枚举 %d 缺少字符串键", int(k)))
		}
		if prev, dup := keyKinds[key]; dup {
			panic(fmt.Sprintf("权限键 %q 被枚举 %d 和 %d 重复使用", key, int(prev), int(k)))
		}
		keyKinds[key] = k
		if _, ok := kindLabels[k]; !ok {
			panic(fmt.Sprintf("权限枚举 %d 缺少中文名称", int(k)))
		}
	}
}

// Key 返回权限对应的字符串键
func (k Kind) Key() string {
	return kindKeys[k]
}

// Label 返回权限的中文名称
func (k Kind) Label() string {
	return kindLabels[k]
}

// Valid 判断是否为闭合枚举内的合法值
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindKeys[k]
}

// KindOf 根据字符串键查找权限种类，不在目录内返回 ErrUnknownCapability
func KindOf(key string) (Kind, error) {
	k, ok := keyKinds[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCapability, key)
	}
	return k, nil
}

// Kinds 返回全部权限种类，按键排序，供角色管理和导出使用
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Key() < kinds[j].Key() })
	return kinds
}
