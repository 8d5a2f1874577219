package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"mall/auth"
	"mall/permission"

	"github.com/gin-gonic/gin"
)

// principalKey gin context 中存放当前主体的键
const principalKey = "mall.principal"

// AuthGate 请求网关：认证 + 授权拦截中间件。
// 每个请求按固定顺序推进，任一环节失败即终止：
// 预检放行 → 提取 token → 校验 token → 查询实时授权 → 按注册表判定 → 放行。
func AuthGate(tokens *auth.TokenService, store permission.Store, reg *permission.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS 预检请求无条件放行，即使没有携带 token
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			// 失败类别只进日志，对客户端统一表现为未认证
			log.Printf("token 校验失败: %v", err)
			abortUnauthorized(c, "登录状态无效或已过期，请重新登录")
			return
		}

		p, err := store.LookupPrincipal(claims.UserID)
		if err != nil {
			if errors.Is(err, permission.ErrStoreUnavailable) {
				log.Printf("查询用户 %d 权限失败: %v", claims.UserID, err)
				abortJSON(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "权限数据暂不可用，请稍后重试")
				return
			}
			// token 有效但用户已不存在，按授权失败处理
			abortJSON(c, http.StatusForbidden, "FORBIDDEN", permission.DefaultDenyMessage)
			return
		}

		// 未在注册表中声明权限的路由只要求登录
		if req, ok := reg.Lookup(c.Request.Method, c.FullPath()); ok {
			if !permission.Evaluate(req, p) {
				abortJSON(c, http.StatusForbidden, "FORBIDDEN", req.Message)
				return
			}
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// extractToken 优先读取 Authorization: Bearer 头，其次回退到 token 查询参数
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}

// GetPrincipal 取出网关写入的当前主体
func GetPrincipal(c *gin.Context) (permission.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return permission.Principal{}, false
	}
	p, ok := v.(permission.Principal)
	return p, ok
}

// GetCurrentUserID 取出当前用户 ID，未认证返回 0
func GetCurrentUserID(c *gin.Context) uint {
	p, ok := GetPrincipal(c)
	if !ok {
		return 0
	}
	return p.UserID
}

func abortUnauthorized(c *gin.Context, message string) {
	abortJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func abortJSON(c *gin.Context, status int, errorCode, message string) {
	c.JSON(status, gin.H{
		"success":   false,
		"message":   message,
		"errorCode": errorCode,
	})
	c.Abort()
}
