package handler

import (
	"net/http"
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler 负责月度统计接口
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

type categoryStat struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
}

type dailyStat struct {
	RecordDate   string  `json:"record_date"`
	DailyIncome  float64 `json:"daily_income"`
	DailyExpense float64 `json:"daily_expense"`
}

// monthScope 限定到当前用户和指定月份的记录（关联分类表）
func (h *StatsHandler) monthScope(userID uint, month string) *gorm.DB {
	return h.DB.Model(&models.Record{}).
		Joins("LEFT JOIN categories ON categories.id = records.category_id").
		Where("records.user_id = ? AND strftime('%Y-%m', records.record_date) = ?", userID, month)
}

// GetMonthlyStats 返回指定月份的收支总览、分类统计和每日趋势。
// 金额统一按绝对值汇总：客户端对支出传负数，这里不依赖符号约定。
func (h *StatsHandler) GetMonthlyStats(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	// 月份参数：?month=2026-08，缺省为当前月
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, "月份格式错误，应为 YYYY-MM")
		return
	}

	// 1. 月度收支总览
	var totals struct {
		TotalIncome  float64
		TotalExpense float64
	}
	if err := h.monthScope(claims.UserID, month).
		Select("COALESCE(SUM(CASE WHEN categories.is_income = 1 THEN ABS(records.amount) ELSE 0 END), 0) AS total_income, " +
			"COALESCE(SUM(CASE WHEN categories.is_income = 0 THEN ABS(records.amount) ELSE 0 END), 0) AS total_expense").
		Scan(&totals).Error; err != nil {
		util.ServerError(c, "获取统计数据失败", err)
		return
	}

	// 2. 支出分类统计
	expenseStats := make([]categoryStat, 0)
	if err := h.monthScope(claims.UserID, month).
		Select("categories.name AS name, SUM(ABS(records.amount)) AS total_amount").
		Where("categories.is_income = 0").
		Group("categories.id, categories.name").
		Order("total_amount DESC").
		Scan(&expenseStats).Error; err != nil {
		util.ServerError(c, "获取统计数据失败", err)
		return
	}

	// 3. 收入分类统计
	incomeStats := make([]categoryStat, 0)
	if err := h.monthScope(claims.UserID, month).
		Select("categories.name AS name, SUM(ABS(records.amount)) AS total_amount").
		Where("categories.is_income = 1").
		Group("categories.id, categories.name").
		Order("total_amount DESC").
		Scan(&incomeStats).Error; err != nil {
		util.ServerError(c, "获取统计数据失败", err)
		return
	}

	// 4. 每日收支趋势
	dailyTrend := make([]dailyStat, 0)
	if err := h.monthScope(claims.UserID, month).
		Select("records.record_date AS record_date, " +
			"SUM(CASE WHEN categories.is_income = 1 THEN ABS(records.amount) ELSE 0 END) AS daily_income, " +
			"SUM(CASE WHEN categories.is_income = 0 THEN ABS(records.amount) ELSE 0 END) AS daily_expense").
		Group("records.record_date").
		Order("records.record_date ASC").
		Scan(&dailyTrend).Error; err != nil {
		util.ServerError(c, "获取统计数据失败", err)
		return
	}

	util.Success(c, gin.H{
		"month":                  month,
		"total_income":           totals.TotalIncome,
		"total_expense":          totals.TotalExpense,
		"balance":                totals.TotalIncome - totals.TotalExpense,
		"expense_category_stats": expenseStats,
		"income_category_stats":  incomeStats,
		"daily_trend":            dailyTrend,
	})
}
