package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wjxyyds666/bookkeeping/internal/middleware"
	"github.com/wjxyyds666/bookkeeping/internal/models"
	"github.com/wjxyyds666/bookkeeping/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 负责账单导出
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

type exportRow struct {
	Amount       float64
	Description  string
	RecordDate   string
	CategoryName string
	IsIncome     bool
}

func (h *ExportHandler) loadRows(userID uint) ([]exportRow, error) {
	var rows []exportRow
	err := h.DB.Model(&models.Record{}).
		Select("records.amount, records.description, records.record_date, categories.name AS category_name, categories.is_income").
		Joins("LEFT JOIN categories ON categories.id = records.category_id").
		Where("records.user_id = ?", userID).
		Order("records.record_date DESC, records.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func typeText(isIncome bool) string {
	if isIncome {
		return "收入"
	}
	return "支出"
}

// ExportCSV 导出当前用户全部记录为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	rows, err := h.loadRows(claims.UserID)
	if err != nil {
		util.ServerError(c, "查询记录失败", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM（让 Excel 正确识别中文）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"类型", "分类", "金额", "备注", "日期"})
	for _, r := range rows {
		writer.Write([]string{
			typeText(r.IsIncome),
			r.CategoryName,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Description,
			r.RecordDate,
		})
	}
}

// ExportXLSX 导出当前用户全部记录为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "未登录，请先登录")
		return
	}

	rows, err := h.loadRows(claims.UserID)
	if err != nil {
		util.ServerError(c, "查询记录失败", err)
		return
	}

	f := excelize.NewFile()
	sheetName := "记账明细"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.ServerError(c, "创建工作表失败", err)
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"类型", "分类", "金额", "备注", "日期"}
	for i, head := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), typeText(r.IsIncome))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.CategoryName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.RecordDate)
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"records_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.ServerError(c, "导出失败", err)
	}
}
