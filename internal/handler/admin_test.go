package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/wjxyyds666/bookkeeping/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsers(t *testing.T) {
	r, db := newTestServer(t)
	registerAndLogin(t, r, "root", "secret1")
	bob := registerAndLogin(t, r, "bob", "secret2")

	// 管理员标记只能在库里改，接口不暴露
	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "root").
		Update("is_admin", true).Error)

	// 重新登录拿到带管理员标记的令牌
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "root",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginData struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &loginData))
	admin := loginData.Token

	// bob 记两笔账
	cats := listCategories(t, r, bob)
	incomeCat := firstCategory(t, cats, true)
	expenseCat := firstCategory(t, cats, false)
	createRecord(t, r, bob, 3000, incomeCat, "", "2026-08-01")
	createRecord(t, r, bob, -50, expenseCat, "", "2026-08-02")

	// 普通用户被拒
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// 管理员可以看到所有用户的汇总
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		ID           uint    `json:"id"`
		Username     string  `json:"username"`
		IsAdmin      bool    `json:"is_admin"`
		RecordCount  int64   `json:"record_count"`
		TotalIncome  float64 `json:"total_income"`
		TotalExpense float64 `json:"total_expense"`
	}
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &users))
	require.Len(t, users, 2)

	byName := make(map[string]int)
	for i, u := range users {
		byName[u.Username] = i
	}
	require.Contains(t, byName, "root")
	require.Contains(t, byName, "bob")

	bobRow := users[byName["bob"]]
	assert.Equal(t, int64(2), bobRow.RecordCount)
	assert.Equal(t, 3000.0, bobRow.TotalIncome)
	assert.Equal(t, 50.0, bobRow.TotalExpense)
	assert.False(t, bobRow.IsAdmin)

	rootRow := users[byName["root"]]
	assert.True(t, rootRow.IsAdmin)
	assert.Zero(t, rootRow.RecordCount)
}
