package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logListResp struct {
	Logs []struct {
		ID        uint   `json:"id"`
		UserID    uint   `json:"user_id"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Action    string `json:"action"`
		RequestID string `json:"request_id"`
	} `json:"logs"`
	Total int64 `json:"total"`
}

func TestAuditLogRecordsMutations(t *testing.T) {
	r, _ := newTestServer(t)
	alice := registerAndLogin(t, r, "alice", "secret1")
	cats := listCategories(t, r, alice)
	expenseCat := firstCategory(t, cats, false)

	createRecord(t, r, alice, -50, expenseCat, "午饭", "2026-08-10")

	w := doJSON(t, r, http.MethodGet, "/api/logs", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp logListResp
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &resp))
	require.NotEmpty(t, resp.Logs)

	entry := resp.Logs[0]
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/records", entry.Path)
	assert.Contains(t, entry.Action, "POST /api/records")
	assert.NotEmpty(t, entry.RequestID)
}

func TestAuditLogScopedToOwner(t *testing.T) {
	r, _ := newTestServer(t)
	alice := registerAndLogin(t, r, "alice", "secret1")
	bob := registerAndLogin(t, r, "bob", "secret2")
	cats := listCategories(t, r, alice)
	expenseCat := firstCategory(t, cats, false)

	createRecord(t, r, alice, -50, expenseCat, "", "2026-08-10")

	// bob 看不到 alice 的操作日志
	w := doJSON(t, r, http.MethodGet, "/api/logs", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp logListResp
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &resp))
	for _, l := range resp.Logs {
		assert.NotEqual(t, "/api/records", l.Path)
	}
}

func TestAuditLogIgnoresReads(t *testing.T) {
	r, _ := newTestServer(t)
	alice := registerAndLogin(t, r, "alice", "secret1")

	// 读取类请求不落日志
	doJSON(t, r, http.MethodGet, "/api/auth/me", alice, nil)

	w := doJSON(t, r, http.MethodGet, "/api/logs", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp logListResp
	require.NoError(t, json.Unmarshal(parseEnvelope(t, w).Data, &resp))
	for _, l := range resp.Logs {
		assert.NotEqual(t, "GET", l.Method)
	}
}
