package api

import (
	"net/http"

	"mall/auth"
	"mall/database"
	"mall/middleware"
	"mall/models"
	"mall/permission"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	tokens *auth.TokenService
	store  permission.Store
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(tokens *auth.TokenService, store permission.Store) *AuthHandler {
	return &AuthHandler{tokens: tokens, store: store}
}

// LoginRequest 登录请求（支持用户名或邮箱）
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"` // 可为用户名或邮箱
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验用户名密码，签发携带权限快照的 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 查找用户（支持用户名或邮箱）
	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	// 仅正常用户可登录
	if user.Status != models.UserStatusActive {
		Fail(c, http.StatusForbidden, "FORBIDDEN", "账号已锁定，请联系管理员解锁")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	// 查询授权集合作为 token 快照
	grants, err := h.store.Lookup(user.ID)
	if err != nil {
		InternalError(c, "查询用户权限失败")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.IsAdmin, grants)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	Success(c, LoginResponse{Token: token, UserInfo: user})
}

// Profile 当前用户信息
// @Summary 当前用户信息
// @Description 返回当前登录用户及其实时授权集合
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "用户信息"
// @Failure 401 {object} Response "未登录"
// @Router /admin/current-user [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		Unauthorized(c, "请先登录")
		return
	}

	var user models.User
	if err := database.DB.First(&user, p.UserID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, gin.H{
		"user":        user,
		"permissions": p.Granted,
	})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "旧密码错误"
// @Router /admin/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		Unauthorized(c, "请先登录")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		BadRequest(c, "旧密码错误")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "修改密码失败"))
		return
	}

	SuccessWithMessage(c, "密码修改成功", nil)
}
