package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bruno-duarte/afinpe-api/internal/models"
	"github.com/bruno-duarte/afinpe-api/internal/planning"
	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves the transaction listing, which carries a
// summary block on top of the generic resource behavior.
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &TransactionHandler{DB: db, PageSize: pageSize}
}

// listSummary totals the filtered set: income from balance-income
// transactions, expense from both expense kinds, balance as the
// difference. All cents.
type listSummary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	Balance      int64 `json:"balance"`
}

// filtered builds the transaction query from the list parameters:
// user, free-text search over descriptions and category names, and
// month/year date prefix.
func (h *TransactionHandler) filtered(c *gin.Context) *gorm.DB {
	q := h.DB.Model(&models.Transaction{})

	if userID := c.Query("user"); userID != "" {
		q = q.Where("transactions.user_id = ?", userID)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Joins("LEFT JOIN subcategories ON subcategories.id = transactions.subcategory_id").
			Where(h.DB.
				Where("transactions.description LIKE ?", pattern).
				Or("transactions.observation LIKE ?", pattern).
				Or("categories.description LIKE ?", pattern).
				Or("subcategories.description LIKE ?", pattern))
	}

	monthStr := c.Query("date__month")
	yearStr := c.Query("date__year")
	if monthStr != "" && yearStr != "" {
		month, errM := strconv.Atoi(monthStr)
		year, errY := strconv.Atoi(yearStr)
		if errM == nil && errY == nil {
			q = q.Where("transactions.date LIKE ?", planning.MonthPrefix(year, month)+"%")
		}
	}

	return q
}

// orderClause maps the ordering parameter (default "-date") onto a safe
// column expression.
func orderClause(ordering string) string {
	if ordering == "" {
		ordering = "-date"
	}
	desc := ordering[0] == '-'
	if desc {
		ordering = ordering[1:]
	}

	col := "transactions.date"
	switch ordering {
	case "date":
		col = "transactions.date"
	case "value":
		col = "transactions.value"
	case "type":
		col = "transactions.type"
	case "created":
		col = "transactions.created_at"
	case "modified":
		col = "transactions.updated_at"
	}
	if desc {
		return col + " DESC"
	}
	return col
}

// List handles GET /transactions: filters, ordering, optional
// pagination, plus the income/expense/balance summary computed over the
// same filtered set.
func (h *TransactionHandler) List(c *gin.Context) {
	base := h.filtered(c)

	sum := func(types []int) (int64, error) {
		var total int64
		err := base.Session(&gorm.Session{}).
			Where("transactions.type IN ?", types).
			Select("COALESCE(SUM(transactions.value), 0)").
			Scan(&total).Error
		if err != nil {
			return 0, fmt.Errorf("sum transactions: %w", err)
		}
		return total, nil
	}

	totalIncome, err := sum(planning.BalanceIncomeTypeCodes)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "summary failed")
		return
	}
	totalExpense, err := sum(planning.ExpenseTypeCodes)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "summary failed")
		return
	}

	summary := listSummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
	}

	ordered := base.Session(&gorm.Session{}).Order(orderClause(c.Query("ordering")))

	if c.Query("page") == "" {
		var items []models.Transaction
		if err := ordered.Find(&items).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
			return
		}
		util.JSON(c, gin.H{"results": items, "summary": summary})
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 200 {
		size = h.PageSize
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "count failed")
		return
	}

	var items []models.Transaction
	if err := ordered.Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
		return
	}

	util.JSON(c, gin.H{
		"count":    count,
		"page":     page,
		"pageSize": size,
		"results":  items,
		"summary":  summary,
	})
}
