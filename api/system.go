package api

import (
	"mall/database"

	"github.com/gin-gonic/gin"
)

// SystemHandler 系统观测处理器
type SystemHandler struct{}

// NewSystemHandler 创建系统观测处理器
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// PoolStats 数据库连接池状态
// @Summary 连接池状态
// @Description 返回数据库连接池的即时计数（打开/使用中/空闲）
// @Tags 系统
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=database.PoolStats} "连接池状态"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/system/pool-stats [get]
func (h *SystemHandler) PoolStats(c *gin.Context) {
	stats, err := database.Stats()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询连接池状态失败"))
		return
	}
	Success(c, stats)
}
