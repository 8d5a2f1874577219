package api

import (
	"fmt"

	"mall/database"
	"mall/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// ImportHandler 导入处理器
type ImportHandler struct{}

// NewImportHandler 创建导入处理器
func NewImportHandler() *ImportHandler {
	return &ImportHandler{}
}

// ImportRowError 单行导入失败信息
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult 导入结果
type ImportResult struct {
	Imported int              `json:"imported"`
	Failed   []ImportRowError `json:"failed"`
}

// ImportUsers 从 Excel 批量导入用户
// @Summary 批量导入用户
// @Description 上传 xlsx 文件，列依次为：用户名、初始密码、邮箱、角色编码（可空）。
// @Description 逐行处理，单行失败不影响其他行，失败原因逐行返回。
// @Tags 导入
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx 文件"
// @Success 200 {object} Response{data=ImportResult} "导入结果"
// @Failure 400 {object} Response "文件格式错误"
// @Router /admin/import/users [post]
func (h *ImportHandler) ImportUsers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "打开文件失败")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		BadRequest(c, "文件格式错误，仅支持 xlsx")
		return
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		BadRequest(c, "读取表格内容失败")
		return
	}
	if len(rows) < 2 {
		BadRequest(c, "表格为空，第一行应为表头")
		return
	}

	// 预取角色编码映射
	roleIDs := make(map[string]uint)
	var roles []models.Role
	if err := database.DB.Find(&roles).Error; err == nil {
		for _, r := range roles {
			roleIDs[r.Code] = r.ID
		}
	}

	result := ImportResult{Failed: []ImportRowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 表头占第 1 行
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "用户名或密码为空"})
			continue
		}
		username, password := row[0], row[1]
		email := ""
		if len(row) > 2 {
			email = row[2]
		}

		var roleID *uint
		if len(row) > 3 && row[3] != "" {
			id, ok := roleIDs[row[3]]
			if !ok {
				result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: fmt.Sprintf("角色编码 %s 不存在", row[3])})
				continue
			}
			roleID = &id
		}

		var existing models.User
		if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "用户名已存在"})
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: "密码加密失败"})
			continue
		}

		user := models.User{
			Username: username,
			Password: string(hashed),
			Email:    email,
			RoleID:   roleID,
			Status:   models.UserStatusActive,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Reason: SafeErrorMessage(err, "写入失败")})
			continue
		}
		result.Imported++
	}

	SuccessWithMessage(c, fmt.Sprintf("导入完成，成功 %d 条，失败 %d 条", result.Imported, len(result.Failed)), result)
}
