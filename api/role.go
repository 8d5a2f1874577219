package api

import (
	"strconv"

	"mall/database"
	"mall/models"
	"mall/permission"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoleHandler 角色管理处理器
type RoleHandler struct{}

// NewRoleHandler 创建角色管理处理器
func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// List 角色列表
// @Summary 角色列表
// @Tags 角色管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Role} "角色列表"
// @Router /admin/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	var roles []models.Role
	if err := database.DB.Order("id").Find(&roles).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询角色失败"))
		return
	}
	Success(c, roles)
}

// RoleRequest 创建/更新角色请求
type RoleRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Code        string `json:"code" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
}

// Create 创建角色
// @Summary 创建角色
// @Tags 角色管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RoleRequest true "角色信息"
// @Success 200 {object} Response{data=models.Role} "创建成功"
// @Failure 400 {object} Response "编码已存在"
// @Router /admin/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var existing models.Role
	if err := database.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		BadRequest(c, "编码已存在")
		return
	}

	role := models.Role{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := database.DB.Create(&role).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建角色失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", role)
}

// Update 更新角色
// @Summary 更新角色
// @Tags 角色管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Param request body RoleRequest true "角色信息"
// @Success 200 {object} Response "更新成功"
// @Failure 400 {object} Response "编码已存在"
// @Router /admin/roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "角色ID格式错误")
		return
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		NotFound(c, "角色不存在")
		return
	}

	// 编码不可与其他角色重复
	var existing models.Role
	if err := database.DB.Where("code = ? AND id <> ?", req.Code, id).First(&existing).Error; err == nil {
		BadRequest(c, "编码已存在")
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"code":        req.Code,
		"description": req.Description,
	}
	if err := database.DB.Model(&role).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新角色失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", nil)
}

// Delete 删除角色
// @Summary 删除角色
// @Description 仍有用户使用的角色不可删除；删除同时清理其授权记录
// @Tags 角色管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "角色仍被使用"
// @Router /admin/roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "角色ID格式错误")
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		NotFound(c, "角色不存在")
		return
	}

	var userCount int64
	database.DB.Model(&models.User{}).Where("role_id = ?", id).Count(&userCount)
	if userCount > 0 {
		BadRequest(c, "角色仍被使用，无法删除")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除角色失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// GetPermissions 查询角色授权集合
// @Summary 查询角色授权
// @Tags 角色管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Success 200 {object} Response "权限键 → 是否授予"
// @Router /admin/roles/{id}/permissions [get]
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "角色ID格式错误")
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		NotFound(c, "角色不存在")
		return
	}

	var rows []models.RolePermission
	if err := database.DB.Where("role_id = ?", id).Find(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询授权失败"))
		return
	}

	granted := make(map[string]bool)
	for _, row := range rows {
		granted[row.PermissionKey] = row.Allowed
	}
	Success(c, granted)
}

// SetPermissionsRequest 替换角色授权请求
type SetPermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" binding:"required"`
}

// SetPermissions 替换角色授权集合
// @Summary 替换角色授权
// @Description 整体替换角色的授权集合；包含目录之外的权限键时整体拒绝
// @Tags 角色管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "角色ID"
// @Param request body SetPermissionsRequest true "权限键 → 是否授予"
// @Success 200 {object} Response "保存成功"
// @Failure 400 {object} Response "未知权限标识"
// @Router /admin/roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "角色ID格式错误")
		return
	}

	var req SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 写入前校验全部键都在权限目录内，与查询时的宽容策略不同
	for key := range req.Permissions {
		if _, err := permission.KindOf(key); err != nil {
			BadRequest(c, err.Error())
			return
		}
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		NotFound(c, "角色不存在")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		for key, allowed := range req.Permissions {
			row := models.RolePermission{RoleID: uint(id), PermissionKey: key, Allowed: allowed}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存授权失败"))
		return
	}

	SuccessWithMessage(c, "保存成功", nil)
}

// PermissionInfo 权限目录条目
type PermissionInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Catalog 权限目录
// @Summary 权限目录
// @Description 返回系统支持的全部权限种类，目录在编译期固定
// @Tags 角色管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]PermissionInfo} "权限目录"
// @Router /admin/permissions [get]
func (h *RoleHandler) Catalog(c *gin.Context) {
	kinds := permission.Kinds()
	list := make([]PermissionInfo, 0, len(kinds))
	for _, k := range kinds {
		list = append(list, PermissionInfo{Key: k.Key(), Label: k.Label()})
	}
	Success(c, list)
}
