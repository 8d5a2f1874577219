package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"mall/auth"
	"mall/config"
	"mall/database"
	"mall/permission"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func initTestConfig() func() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-jwt-secret-key", ExpireTime: time.Hour},
	}
	return func() { config.GlobalConfig = nil }
}

func userMockRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "is_admin", "role_id", "status", "created_at", "updated_at", "deleted_at"})
}

func TestAuthHandler_Login_Success(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	// 登录时查用户
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("operator", "operator").
		WillReturnRows(userMockRows().
			AddRow(7, "operator", string(hashed), "", false, nil, "active", time.Now(), time.Now(), nil))
	// 签发前查询授权快照（无角色用户只查用户表）
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(7).
		WillReturnRows(userMockRows().
			AddRow(7, "operator", string(hashed), "", false, nil, "active", time.Now(), time.Now(), nil))

	tokens := auth.NewTokenService("test-jwt-secret-key", time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthHandler(tokens, permission.NewGormStore(database.DB)).Login)

	body := `{"username":"operator","password":"password123"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.Token)

	// 签发的 token 可被同一密钥解析，快照与签发入参一致
	claims, err := tokens.Parse(resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "operator", claims.Username)
	assert.False(t, claims.IsAdmin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("operator", "operator").
		WillReturnRows(userMockRows().
			AddRow(7, "operator", string(hashed), "", false, nil, "active", time.Now(), time.Now(), nil))

	tokens := auth.NewTokenService("test-jwt-secret-key", time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthHandler(tokens, permission.NewGormStore(database.DB)).Login)

	body := `{"username":"operator","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["success"].(bool))
	assert.Equal(t, "UNAUTHORIZED", resp["errorCode"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_LockedUser(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("locked_user", "locked_user").
		WillReturnRows(userMockRows().
			AddRow(8, "locked_user", string(hashed), "", false, nil, "locked", time.Now(), time.Now(), nil))

	tokens := auth.NewTokenService("test-jwt-secret-key", time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthHandler(tokens, permission.NewGormStore(database.DB)).Login)

	body := `{"username":"locked_user","password":"password123"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "账号已锁定，请联系管理员解锁", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	defer initTestConfig()()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("nobody", "nobody").
		WillReturnError(gorm.ErrRecordNotFound)

	tokens := auth.NewTokenService("test-jwt-secret-key", time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthHandler(tokens, permission.NewGormStore(database.DB)).Login)

	body := `{"username":"nobody","password":"whatever"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 不区分用户不存在与密码错误，避免枚举用户名
	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
