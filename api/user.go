package api

import (
	"log"
	"strconv"

	"mall/database"
	"mall/models"
	"mall/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	emailService *service.EmailService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(emailService *service.EmailService) *UserHandler {
	return &UserHandler{emailService: emailService}
}

// List 用户列表
// @Summary 用户列表
// @Description 分页查询用户，支持按用户名/邮箱关键字和状态过滤
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认 1"
// @Param page_size query int false "每页条数，默认 20"
// @Param keyword query string false "用户名/邮箱关键字"
// @Param status query string false "用户状态 locked/active"
// @Success 200 {object} Response{data=PageResponse} "用户列表"
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.User{})
	if keyword := c.Query("keyword"); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     users,
	})
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	RoleID   *uint  `json:"role_id"`
}

// Create 创建用户
// @Summary 创建用户
// @Description 管理员创建用户；配置了邮箱且邮件服务开启时，向新用户发送初始密码
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "用户信息"
// @Success 200 {object} Response{data=models.User} "创建成功"
// @Failure 400 {object} Response "用户名已存在"
// @Router /admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		BadRequest(c, "用户名已存在")
		return
	}

	if req.RoleID != nil {
		var role models.Role
		if err := database.DB.First(&role, *req.RoleID).Error; err != nil {
			BadRequest(c, "角色不存在")
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		RoleID:   req.RoleID,
		Status:   models.UserStatusActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	// 初始密码邮件为尽力而为，发送失败不影响创建结果
	if req.Email != "" && h.emailService != nil {
		if err := h.emailService.SendInitialPasswordEmail(req.Email, req.Username, req.Password); err != nil {
			log.Printf("发送初始密码邮件失败: %v", err)
		}
	}

	SuccessWithMessage(c, "创建成功", user)
}

// UpdateStatusRequest 修改用户状态请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=locked active"`
}

// UpdateStatus 修改用户状态（锁定/解锁）
// @Summary 修改用户状态
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body UpdateStatusRequest true "目标状态"
// @Success 200 {object} Response "修改成功"
// @Failure 404 {object} Response "用户不存在"
// @Router /admin/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "用户ID格式错误")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if err := database.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "修改状态失败"))
		return
	}

	SuccessWithMessage(c, "修改成功", nil)
}

// UpdateRoleRequest 分配角色请求
type UpdateRoleRequest struct {
	RoleID *uint `json:"role_id"` // 空表示取消角色
}

// UpdateRole 分配角色
// @Summary 为用户分配角色
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body UpdateRoleRequest true "角色ID，空表示取消"
// @Success 200 {object} Response "分配成功"
// @Failure 404 {object} Response "用户或角色不存在"
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "用户ID格式错误")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if req.RoleID != nil {
		var role models.Role
		if err := database.DB.First(&role, *req.RoleID).Error; err != nil {
			NotFound(c, "角色不存在")
			return
		}
	}

	if err := database.DB.Model(&user).Update("role_id", req.RoleID).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "分配角色失败"))
		return
	}

	SuccessWithMessage(c, "分配成功", nil)
}

// Delete 删除用户
// @Summary 删除用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "不能删除超级管理员"
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "用户ID格式错误")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	if user.IsAdmin {
		BadRequest(c, "不能删除超级管理员")
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除用户失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
