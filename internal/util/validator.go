package util

import (
	"fmt"
	"time"
)

// ValidateUsername 验证用户名长度（3-20 位）
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("username length must be 3-20, got %d", len(username))
	}
	return nil
}

// ValidatePassword 验证密码长度（至少 6 位）
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is empty")
	}
	if len(password) < 6 {
		return fmt.Errorf("password too short, min 6 characters")
	}
	return nil
}

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth 验证月份格式（必须为 YYYY-MM）
func ValidateMonth(monthStr string) error {
	if monthStr == "" {
		return fmt.Errorf("month is empty")
	}
	_, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}
