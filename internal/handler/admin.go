package handler

import (
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler 管理员接口，路由层已由 AuthMiddleware 校验管理员权限
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

type adminUserRow struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	RecordCount  int64     `json:"record_count"`
	TotalIncome  float64   `json:"total_income"`
	TotalExpense float64   `json:"total_expense"`
}

// ListUsers 返回所有用户及其记账汇总（不含密码）
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users := make([]adminUserRow, 0)
	if err := h.DB.Model(&models.User{}).
		Select("users.id, users.username, users.is_admin, users.created_at, " +
			"COUNT(records.id) AS record_count, " +
			"COALESCE(SUM(CASE WHEN categories.is_income = 1 THEN ABS(records.amount) ELSE 0 END), 0) AS total_income, " +
			"COALESCE(SUM(CASE WHEN categories.is_income = 0 THEN ABS(records.amount) ELSE 0 END), 0) AS total_expense").
		Joins("LEFT JOIN records ON records.user_id = users.id").
		Joins("LEFT JOIN categories ON categories.id = records.category_id").
		Group("users.id, users.username, users.is_admin, users.created_at").
		Order("users.created_at DESC").
		Scan(&users).Error; err != nil {
		util.ServerError(c, "获取用户列表失败", err)
		return
	}

	util.Success(c, users)
}
