package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordHandler 负责记账记录的增删改查
type RecordHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewRecordHandler(db *gorm.DB, pageSize int) *RecordHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &RecordHandler{DB: db, PageSize: pageSize}
}

// 列表项：记录字段 + 关联分类的名称和收支类型
type recordItem struct {
	ID           uint    `json:"id"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	RecordDate   string  `json:"record_date"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	IsIncome     bool    `json:"is_income"`
}

// baseQuery 构造带筛选条件的基础查询，列表和计数共用，
// 保证 total 和分页结果的口径一致。筛选值全部走绑定参数。
func (h *RecordHandler) baseQuery(c *gin.Context, userID uint) (*gorm.DB, error) {
	base := h.DB.Model(&models.Record{}).
		Joins("LEFT JOIN categories ON categories.id = records.category_id").
		Where("records.user_id = ?", userID)

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" && endDate != "" {
		if err := util.ValidateDate(startDate); err != nil {
			return nil, err
		}
		if err := util.ValidateDate(endDate); err != nil {
			return nil, err
		}
		base = base.Where("records.record_date BETWEEN ? AND ?", startDate, endDate)
	}

	if categoryID := c.Query("categoryId"); categoryID != "" {
		base = base.Where("records.category_id = ?", categoryID)
	}

	switch c.Query("type") {
	case "income":
		base = base.Where("categories.is_income = 1")
	case "expense":
		base = base.Where("categories.is_income = 0")
	}

	return base, nil
}

// List 查询记录列表，支持日期范围、分类、收支类型筛选和分页
func (h *RecordHandler) List(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(h.PageSize)))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = h.PageSize
	}
	offset := (page - 1) * pageSize

	base, err := h.baseQuery(c, claims.UserID)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	// 总条数和列表用同一组筛选条件
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.ServerError(c, "获取记录失败", err)
		return
	}

	records := make([]recordItem, 0, pageSize)
	if err := base.Session(&gorm.Session{}).
		Select("records.id, records.amount, records.description, records.record_date, records.category_id, categories.name AS category_name, categories.is_income").
		Order("records.record_date DESC, records.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Scan(&records).Error; err != nil {
		util.ServerError(c, "获取记录失败", err)
		return
	}

	util.Success(c, gin.H{
		"records":  records,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

type createRecordReq struct {
	Amount      float64 `json:"amount"`
	CategoryID  uint    `json:"category_id"`
	Description string  `json:"description"`
	RecordDate  string  `json:"record_date"`
}

// Create 新增记账记录。日期缺省为今天，备注缺省为空。
func (h *RecordHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	var req createRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "金额和分类不能为空")
		return
	}

	if req.Amount == 0 || req.CategoryID == 0 {
		util.Error(c, http.StatusBadRequest, "金额和分类不能为空")
		return
	}

	if req.RecordDate == "" {
		req.RecordDate = time.Now().Format("2006-01-02")
	} else if err := util.ValidateDate(req.RecordDate); err != nil {
		util.Error(c, http.StatusBadRequest, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	record := models.Record{
		UserID:      claims.UserID,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		RecordDate:  req.RecordDate,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		util.ServerError(c, "添加记录失败", err)
		return
	}

	util.SuccessMsg(c, "记录添加成功", gin.H{"id": record.ID})
}

type updateRecordReq struct {
	Amount      float64 `json:"amount"`
	CategoryID  uint    `json:"category_id"`
	Description string  `json:"description"`
	RecordDate  string  `json:"record_date"`
}

// Update 修改记账记录，先校验记录归属再更新
func (h *RecordHandler) Update(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "参数不全")
		return
	}

	var req updateRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "参数不全")
		return
	}
	if req.Amount == 0 || req.CategoryID == 0 || req.RecordDate == "" {
		util.Error(c, http.StatusBadRequest, "参数不全")
		return
	}
	if err := util.ValidateDate(req.RecordDate); err != nil {
		util.Error(c, http.StatusBadRequest, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	// 校验记录归属
	var record models.Record
	if err := h.DB.Where("id = ? AND user_id = ?", id, claims.UserID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusForbidden, "无权限修改该记录")
		} else {
			util.ServerError(c, "查询记录失败", err)
		}
		return
	}

	record.Amount = req.Amount
	record.CategoryID = req.CategoryID
	record.Description = req.Description
	record.RecordDate = req.RecordDate

	if err := h.DB.Save(&record).Error; err != nil {
		util.ServerError(c, "修改记录失败", err)
		return
	}

	util.SuccessMsg(c, "记录修改成功", nil)
}

// Delete 删除记账记录，只能删除自己的
func (h *RecordHandler) Delete(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "记录ID不能为空")
		return
	}

	// 校验记录归属
	var record models.Record
	if err := h.DB.Where("id = ? AND user_id = ?", id, claims.UserID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusForbidden, "无权限删除该记录")
		} else {
			util.ServerError(c, "查询记录失败", err)
		}
		return
	}

	if err := h.DB.Delete(&record).Error; err != nil {
		util.ServerError(c, "删除记录失败", err)
		return
	}

	util.SuccessMsg(c, "记录删除成功", nil)
}
