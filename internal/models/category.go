package models

import "time"

// Category 收支分类。UserID 为 0 表示系统内置分类，所有用户可见。
// 同一归属下分类名唯一。
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;default:0;uniqueIndex:idx_category_owner_name" json:"user_id"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_category_owner_name" json:"name"`
	IsIncome  bool      `gorm:"not null;default:false" json:"is_income"`
	CreatedAt time.Time `json:"-"`
}
