package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/bruno-duarte/afinpe-api/internal/middleware"
	"github.com/bruno-duarte/afinpe-api/internal/models"
	"github.com/bruno-duarte/afinpe-api/internal/planning"
	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the authenticated user's transactions as CSV or
// XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

type exportRow struct {
	Date        string
	Description string
	Category    string
	Type        int
	Value       int64
	Paid        *int
}

func (h *ExportHandler) rows(userID string) ([]exportRow, error) {
	var rows []exportRow
	err := h.DB.Model(&models.Transaction{}).
		Select("transactions.date, transactions.description, categories.description AS category, transactions.type, transactions.value, transactions.paid").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Order("transactions.date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return rows, nil
}

// formatCents renders an integer cent amount as a decimal string with
// two places, without going through floating point.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func typeLabel(typeCode int) string {
	switch planning.Classify(typeCode) {
	case planning.KindIncome:
		return "income"
	case planning.KindExpense:
		return "expense"
	case planning.KindCreditCardExpense:
		return "creditCardExpense"
	case planning.KindTransfer:
		return "transfer"
	}
	return "other"
}

func paidLabel(paid *int) string {
	if paid == nil {
		return ""
	}
	if *paid == planning.PaidDone {
		return "paid"
	}
	return "pending"
}

var exportHeaders = []string{"Date", "Description", "Category", "Type", "Value", "Paid"}

// ExportCSV handles GET /export/csv.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet tools pick the right encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{
			r.Date,
			r.Description,
			r.Category,
			typeLabel(r.Type),
			formatCents(r.Value),
			paidLabel(r.Paid),
		})
	}
}

// ExportXLSX handles GET /export/xlsx.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), typeLabel(r.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), formatCents(r.Value))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), paidLabel(r.Paid))
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 18)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 10)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
