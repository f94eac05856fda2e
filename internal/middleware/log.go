package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/wjxyyds666/bookkeeping/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware 记录已登录用户的写操作日志。
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 读取请求体，读完后塞回去供后续 handler 使用
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		// 执行请求
		c.Next()

		// 只记录登录用户的写操作
		claims, ok := CurrentUser(c)
		if !ok {
			return
		}
		if c.Request.Method == http.MethodGet {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		// 密码相关接口不记请求体
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 && !strings.Contains(path, "password") {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    claims.UserID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString(RequestIDKey),
		}

		_ = db.Create(&entry).Error
	}
}
