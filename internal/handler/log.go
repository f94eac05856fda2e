package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler 负责操作日志查询接口
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

// ListLogs 列出当前用户的操作日志（分页 + 时间 + 关键字）
func (h *LogHandler) ListLogs(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	// 时间筛选：start / end（格式 YYYY-MM-DD）
	startStr := c.Query("start")
	endStr := c.Query("end")

	var (
		startTime time.Time
		endTime   time.Time
		hasStart  bool
		hasEnd    bool
		err       error
	)

	if startStr != "" {
		startTime, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "开始日期格式错误")
			return
		}
		hasStart = true
	}
	if endStr != "" {
		endTime, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "结束日期格式错误")
			return
		}
		endTime = endTime.Add(24 * time.Hour)
		hasEnd = true
	}

	// 关键字搜索：q（匹配 path / action）
	q := strings.TrimSpace(c.Query("q"))

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", claims.UserID)
	if hasStart {
		base = base.Where("created_at >= ?", startTime)
	}
	if hasEnd {
		base = base.Where("created_at < ?", endTime)
	}
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("path LIKE ? OR action LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.ServerError(c, "查询日志失败", err)
		return
	}

	logs := make([]models.AuditLog, 0, size)
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.ServerError(c, "查询日志失败", err)
		return
	}

	util.Success(c, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
