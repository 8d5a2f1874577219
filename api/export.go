package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"mall/database"
	"mall/models"
	"mall/permission"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportUsersExcel 导出用户列表为 Excel
// @Summary 导出用户列表
// @Description 导出全部用户为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 文件"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/export/users/excel [get]
func (h *ExportHandler) ExportUsersExcel(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("id").Find(&users).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	// 预取角色名，避免逐行查询
	roleNames := make(map[uint]string)
	var roles []models.Role
	if err := database.DB.Find(&roles).Error; err == nil {
		for _, r := range roles {
			roleNames[r.ID] = r.Name
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "用户列表"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 15)
	f.SetColWidth(sheetName, "F", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 20)

	headers := []string{"ID", "用户名", "邮箱", "状态", "角色", "超级管理员", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, user := range users {
		row := i + 2
		roleName := ""
		if user.RoleID != nil {
			roleName = roleNames[*user.RoleID]
		}
		isAdmin := "否"
		if user.IsAdmin {
			isAdmin = "是"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), user.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), user.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), user.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), user.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), roleName)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), isAdmin)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), user.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	filename := fmt.Sprintf("用户列表_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

// ExportRolesCSV 导出角色权限矩阵为 CSV
// @Summary 导出角色权限矩阵
// @Description 行是角色，列是权限目录中的全部权限种类，单元格为是否授予
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV 文件"
// @Failure 403 {object} Response "权限不足"
// @Router /admin/export/roles/csv [get]
func (h *ExportHandler) ExportRolesCSV(c *gin.Context) {
	var roles []models.Role
	if err := database.DB.Order("id").Find(&roles).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询角色失败"))
		return
	}

	var rows []models.RolePermission
	if err := database.DB.Find(&rows).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询授权失败"))
		return
	}
	granted := make(map[uint]map[string]bool)
	for _, row := range rows {
		if granted[row.RoleID] == nil {
			granted[row.RoleID] = make(map[string]bool)
		}
		granted[row.RoleID][row.PermissionKey] = row.Allowed
	}

	kinds := permission.Kinds()

	var buf bytes.Buffer
	// UTF-8 BOM，避免 Excel 打开中文乱码
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(&buf)

	header := []string{"角色", "编码"}
	for _, k := range kinds {
		header = append(header, k.Label())
	}
	w.Write(header)

	for _, role := range roles {
		record := []string{role.Name, role.Code}
		for _, k := range kinds {
			if granted[role.ID][k.Key()] {
				record = append(record, "是")
			} else {
				record = append(record, "否")
			}
		}
		w.Write(record)
	}
	w.Flush()

	filename := fmt.Sprintf("角色权限_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
