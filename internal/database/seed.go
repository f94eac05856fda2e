package database

import (
	"fmt"

	"github.com/wjxyyds666/bookkeeping/internal/models"

	"gorm.io/gorm"
)

// 系统内置分类（user_id = 0），首次启动时写入
var defaultCategories = []models.Category{
	{UserID: 0, Name: "工资", IsIncome: true},
	{UserID: 0, Name: "奖金", IsIncome: true},
	{UserID: 0, Name: "理财收益", IsIncome: true},
	{UserID: 0, Name: "其他收入", IsIncome: true},
	{UserID: 0, Name: "餐饮", IsIncome: false},
	{UserID: 0, Name: "交通", IsIncome: false},
	{UserID: 0, Name: "购物", IsIncome: false},
	{UserID: 0, Name: "居住", IsIncome: false},
	{UserID: 0, Name: "娱乐", IsIncome: false},
	{UserID: 0, Name: "医疗", IsIncome: false},
	{UserID: 0, Name: "其他支出", IsIncome: false},
}

// SeedCategories inserts the shared system categories if none exist yet.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("user_id = 0").Count(&count).Error; err != nil {
		return fmt.Errorf("count system categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	cats := make([]models.Category, len(defaultCategories))
	copy(cats, defaultCategories)
	if err := db.Create(&cats).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
