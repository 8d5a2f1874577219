package router

import (
	"net/http"
	"path"
	"strings"

	"mall/api"
	"mall/auth"
	"mall/config"
	_ "mall/docs"
	"mall/middleware"
	"mall/permission"
	"mall/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
// 受保护的路由在注册时同步登记权限声明，路由与权限不会漂移
func SetupRouter(cfg *config.Config, tokens *auth.TokenService, store permission.Store) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 登录接口（无需认证）
	authHandler := api.NewAuthHandler(tokens, store)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
	}

	// 权限注册表：启动阶段填充完毕后只读
	reg := permission.NewRegistry()

	// 后台管理接口，统一经过认证授权网关
	admin := r.Group("/admin")
	admin.Use(middleware.AuthGate(tokens, store, reg))
	g := guard{group: admin, reg: reg}
	{
		// 仅要求登录的接口
		admin.GET("/current-user", authHandler.Profile)
		admin.PUT("/password", authHandler.ChangePassword)
		roleHandler := api.NewRoleHandler()
		admin.GET("/permissions", roleHandler.Catalog)

		// 用户管理
		userHandler := api.NewUserHandler(service.NewEmailService(&cfg.Email))
		g.handle(http.MethodGet, "/users", permission.RequireAny(permission.UserManage), userHandler.List)
		g.handle(http.MethodPost, "/users", permission.RequireAny(permission.UserManage), userHandler.Create)
		g.handle(http.MethodPut, "/users/:id/status", permission.RequireAny(permission.UserManage), userHandler.UpdateStatus)
		g.handle(http.MethodPut, "/users/:id/role", permission.RequireAny(permission.UserManage), userHandler.UpdateRole)
		g.handle(http.MethodDelete, "/users/:id", permission.RequireAny(permission.UserManage), userHandler.Delete)

		// 角色管理
		g.handle(http.MethodGet, "/roles", permission.RequireAny(permission.RoleManage), roleHandler.List)
		g.handle(http.MethodPost, "/roles", permission.RequireAny(permission.RoleManage), roleHandler.Create)
		g.handle(http.MethodPut, "/roles/:id", permission.RequireAny(permission.RoleManage), roleHandler.Update)
		g.handle(http.MethodDelete, "/roles/:id", permission.RequireAny(permission.RoleManage), roleHandler.Delete)
		g.handle(http.MethodGet, "/roles/:id/permissions", permission.RequireAny(permission.RoleManage), roleHandler.GetPermissions)
		// 改授权需同时具备角色管理与系统配置权限
		g.handle(http.MethodPut, "/roles/:id/permissions",
			permission.RequireAll(permission.RoleManage, permission.SystemConfig).
				WithMessage("需要同时具备角色管理与系统配置权限"),
			roleHandler.SetPermissions)

		// 数据导出
		exportHandler := api.NewExportHandler()
		g.handle(http.MethodGet, "/export/users/excel", permission.RequireAny(permission.DataExport), exportHandler.ExportUsersExcel)
		g.handle(http.MethodGet, "/export/roles/csv", permission.RequireAny(permission.DataExport), exportHandler.ExportRolesCSV)

		// 数据导入
		importHandler := api.NewImportHandler()
		g.handle(http.MethodPost, "/import/users", permission.RequireAny(permission.DataImport), importHandler.ImportUsers)

		// 系统观测
		systemHandler := api.NewSystemHandler()
		g.handle(http.MethodGet, "/system/pool-stats", permission.RequireAny(permission.SystemConfig), systemHandler.PoolStats)
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// guard 将路由注册与权限声明绑定为一次操作
type guard struct {
	group *gin.RouterGroup
	reg   *permission.Registry
}

func (g guard) handle(method, relativePath string, req permission.Requirement, handler gin.HandlerFunc) {
	g.group.Handle(method, relativePath, handler)
	g.reg.Register(method, joinPaths(g.group.BasePath(), relativePath), req)
}

// joinPaths 拼接路由组前缀与相对路径，与 gin 注册时的 FullPath 保持一致
func joinPaths(base, relative string) string {
	if relative == "" {
		return base
	}
	p := path.Join(base, relative)
	if strings.HasSuffix(relative, "/") && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
