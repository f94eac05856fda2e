package handler

import (
	"net/http"
	"strings"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 负责分类相关接口
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

// List 返回系统内置分类 + 当前用户自定义分类，收入分类排在前面
func (h *CategoryHandler) List(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	var categories []models.Category
	if err := h.DB.
		Where("user_id = 0 OR user_id = ?", claims.UserID).
		Order("is_income DESC, id ASC").
		Find(&categories).Error; err != nil {
		util.ServerError(c, "获取分类失败", err)
		return
	}

	util.Success(c, categories)
}

type createCategoryReq struct {
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

// Create 新增自定义分类，(用户, 名称) 唯一
func (h *CategoryHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "分类名称不能为空")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "分类名称不能为空")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", claims.UserID, req.Name).
		Count(&count).Error; err != nil {
		util.ServerError(c, "查询分类失败", err)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "该分类名称已存在")
		return
	}

	category := models.Category{
		UserID:   claims.UserID,
		Name:     req.Name,
		IsIncome: req.IsIncome,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		// 并发插入时唯一索引兜底
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			util.Error(c, http.StatusBadRequest, "该分类名称已存在")
			return
		}
		util.ServerError(c, "添加分类失败", err)
		return
	}

	util.SuccessMsg(c, "分类添加成功", gin.H{"id": category.ID})
}
