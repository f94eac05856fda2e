package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wjxyyds666/bookkeeping/internal/config"
	"github.com/wjxyyds666/bookkeeping/internal/database"
	"github.com/wjxyyds666/bookkeeping/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// 统一返回结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestServer 每个测试一个独立的内存数据库和路由
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "打开内存数据库失败")

	require.NoError(t, database.AutoMigrate(db), "迁移失败")
	require.NoError(t, database.SeedCategories(db), "写入内置分类失败")

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: testSecret, ExpireDays: 7},
		App:    config.AppConfig{PageSize: 20},
	}
	return router.SetupRouter(cfg, db), db
}

// doJSON 发送 JSON 请求，token 为空表示不带 Authorization
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "响应不是合法 JSON: %s", w.Body.String())
	return env
}

// registerAndLogin 注册并登录，返回令牌
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "注册失败: %s", w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "登录失败: %s", w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	env := parseEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// listCategories 返回当前用户可见的分类
type categoryItem struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

func listCategories(t *testing.T, r *gin.Engine, token string) []categoryItem {
	t.Helper()

	w := doJSON(t, r, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "获取分类失败: %s", w.Body.String())

	env := parseEnvelope(t, w)
	var cats []categoryItem
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.NotEmpty(t, cats)
	return cats
}

// firstCategory 取第一个符合收支类型的分类 ID
func firstCategory(t *testing.T, cats []categoryItem, isIncome bool) uint {
	t.Helper()

	for _, c := range cats {
		if c.IsIncome == isIncome {
			return c.ID
		}
	}
	t.Fatalf("没有找到 is_income=%v 的分类", isIncome)
	return 0
}

// createRecord 创建一条记录并返回 ID
func createRecord(t *testing.T, r *gin.Engine, token string, amount float64, categoryID uint, description, date string) uint {
	t.Helper()

	body := gin.H{
		"amount":      amount,
		"category_id": categoryID,
	}
	if description != "" {
		body["description"] = description
	}
	if date != "" {
		body["record_date"] = date
	}

	w := doJSON(t, r, http.MethodPost, "/api/records", token, body)
	require.Equal(t, http.StatusOK, w.Code, "创建记录失败: %s", w.Body.String())

	env := parseEnvelope(t, w)
	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}
