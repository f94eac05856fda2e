package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	r, _ := newTestServer(t)
	alice := registerAndLogin(t, r, "alice", "secret1")
	cats := listCategories(t, r, alice)
	expenseCat := firstCategory(t, cats, false)
	incomeCat := firstCategory(t, cats, true)

	createRecord(t, r, alice, 3000, incomeCat, "工资", "2026-08-01")
	createRecord(t, r, alice, -50, expenseCat, "午饭", "2026-08-10")

	w := doJSON(t, r, http.MethodGet, "/api/records/export/csv", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "类型"))
	assert.Contains(t, body, "收入")
	assert.Contains(t, body, "支出")
	assert.Contains(t, body, "午饭")
	assert.Contains(t, body, "2026-08-10")
}

func TestExportXLSX(t *testing.T) {
	r, _ := newTestServer(t)
	alice := registerAndLogin(t, r, "alice", "secret1")
	cats := listCategories(t, r, alice)
	expenseCat := firstCategory(t, cats, false)

	createRecord(t, r, alice, -50, expenseCat, "午饭", "2026-08-10")

	w := doJSON(t, r, http.MethodGet, "/api/records/export/xlsx", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestExportRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/records/export/csv", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
