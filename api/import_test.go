package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// buildImportFile 生成内存中的 xlsx 导入文件
func buildImportFile(t *testing.T, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, cell))
		}
	}
	content, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "users.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportHandler_MissingFile(t *testing.T) {
	defer initTestConfig()()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/import/users", NewImportHandler().ImportUsers)
	req := httptest.NewRequest("POST", "/admin/import/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "请上传文件", resp["message"])
}

func TestImportHandler_ImportUsers(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 预取角色编码映射
	mock.ExpectQuery("SELECT .* FROM `roles`").
		WillReturnRows(roleMockRows().
			AddRow(2, "运营", "operator", "", time.Now(), time.Now(), nil))

	// 第 2 行：新用户，正常写入
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("newbie").
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	// 第 3 行：用户名已存在
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("admin").
		WillReturnRows(userMockRows().
			AddRow(1, "admin", "x", "", true, nil, "active", time.Now(), time.Now(), nil))

	body, contentType := buildImportFile(t, [][]string{
		{"用户名", "初始密码", "邮箱", "角色编码"},
		{"newbie", "password123", "newbie@example.com", "operator"},
		{"admin", "password123", "", ""},
		{"", "", "", ""},
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/import/users", NewImportHandler().ImportUsers)
	req := httptest.NewRequest("POST", "/admin/import/users", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Success bool         `json:"success"`
		Data    ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Imported)
	require.Len(t, resp.Data.Failed, 2)
	assert.Equal(t, 3, resp.Data.Failed[0].Row)
	assert.Equal(t, "用户名已存在", resp.Data.Failed[0].Reason)
	assert.Equal(t, 4, resp.Data.Failed[1].Row)
	assert.Equal(t, "用户名或密码为空", resp.Data.Failed[1].Reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportHandler_UnknownRoleCode(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `roles`").
		WillReturnRows(roleMockRows())

	body, contentType := buildImportFile(t, [][]string{
		{"用户名", "初始密码", "邮箱", "角色编码"},
		{"newbie", "password123", "", "not-a-role"},
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/import/users", NewImportHandler().ImportUsers)
	req := httptest.NewRequest("POST", "/admin/import/users", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.Imported)
	require.Len(t, resp.Data.Failed, 1)
	assert.Contains(t, resp.Data.Failed[0].Reason, "not-a-role")
	require.NoError(t, mock.ExpectationsWereMet())
}
