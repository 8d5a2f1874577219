package database

import (
	"fmt"
	"log"
	"time"

	"mall/config"
	"mall/models"
	"mall/permission"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 连接池参数来自配置：空闲/最大连接数、连接最大存活与空闲时间
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	if cfg.Database.ConnMaxLifetimeMins > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMins) * time.Minute)
	}
	if cfg.Database.ConnMaxIdleMins > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleMins) * time.Minute)
	}

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.RolePermission{},
	); err != nil {
		return err
	}

	// 兼容历史数据：老版本没有 status 字段，默认设置为 active，避免升级后无法登录
	_ = DB.Model(&models.User{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.UserStatusActive).Error

	if err := seedDefaults(); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// PoolStats 连接池即时状态
type PoolStats struct {
	Open  int `json:"open"`   // 当前打开的连接数
	InUse int `json:"in_use"` // 使用中的连接数
	Idle  int `json:"idle"`   // 空闲连接数
}

// Stats 返回连接池即时计数，供观测接口使用
func Stats() (PoolStats, error) {
	sqlDB, err := DB.DB()
	if err != nil {
		return PoolStats{}, err
	}
	s := sqlDB.Stats()
	return PoolStats{
		Open:  s.OpenConnections,
		InUse: s.InUse,
		Idle:  s.Idle,
	}, nil
}

// seedDefaults 初始化默认角色与管理员账号（仅当表为空时）
func seedDefaults() error {
	// 默认角色：运营（订单/物流/售后/评价）与客服（仅售后/评价）
	var roleCount int64
	DB.Model(&models.Role{}).Count(&roleCount)
	if roleCount == 0 {
		seeds := []struct {
			role   models.Role
			grants []permission.Kind
		}{
			{
				role: models.Role{Name: "运营", Code: "operator", Description: "订单、物流、售后、评价管理"},
				grants: []permission.Kind{
					permission.OrderManage,
					permission.LogisticsManage,
					permission.AfterSalesManage,
					permission.ReviewManage,
				},
			},
			{
				role:   models.Role{Name: "客服", Code: "support", Description: "售后与评价处理"},
				grants: []permission.Kind{permission.AfterSalesManage, permission.ReviewManage},
			},
		}
		for _, s := range seeds {
			if err := DB.Create(&s.role).Error; err != nil {
				return err
			}
			for _, k := range s.grants {
				rp := models.RolePermission{RoleID: s.role.ID, PermissionKey: k.Key(), Allowed: true}
				if err := DB.Create(&rp).Error; err != nil {
					return err
				}
			}
		}
		log.Println("已初始化默认角色")
	}

	// 默认管理员账号（仅当没有任何用户时创建）
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Username: "admin",
			Password: string(hashed),
			IsAdmin:  true,
			Status:   models.UserStatusActive,
		}
		if err := DB.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("已创建默认管理员账号 admin/admin123，请尽快修改密码")
	}

	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
