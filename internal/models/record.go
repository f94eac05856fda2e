package models

import "time"

// Record 表示一笔记账记录。
// RecordDate 存 YYYY-MM-DD 的日历日期，和时间戳区分开；
// 金额符号由客户端决定（支出为负），服务端按原样保存。
type Record struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Description string    `gorm:"size:255" json:"description"`
	RecordDate  string    `gorm:"size:10;index;not null" json:"record_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
