package planning

import (
	"errors"
	"fmt"
	"time"

	"github.com/bruno-duarte/afinpe-api/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no Planning row matches the requested
// (user, month, year) scope.
var ErrNotFound = errors.New("planning not found")

// Service computes the monthly planning aggregates. It performs reads
// only, over an injected database handle.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CurrencyDetail is the trimmed currency object embedded in category
// breakdown lines.
type CurrencyDetail struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Symbol    string `json:"symbol"`
	MinorUnit int    `json:"minorUnit"`
}

// Summary reconciles the monthly income plan against actual transaction
// activity. All values are integer cents.
type Summary struct {
	ID              string           `json:"id"`
	Planned         int64            `json:"planned"`
	Executed        int64            `json:"executed"`
	Pending         int64            `json:"pending"`
	Remaining       int64            `json:"remaining"`
	MonthlyIncome   int64            `json:"monthlyIncome"`
	AvailablePerDay int64            `json:"availablePerDay"`
	Currency        *models.Currency `json:"currency"`
}

// CategoryLine is one budget line of the category breakdown.
type CategoryLine struct {
	ID               string          `json:"id"`
	PlanningID       string          `json:"planningId"`
	PlanningCurrency *CurrencyDetail `json:"planningCurrency"`
	Category         models.Category `json:"category"`
	Planned          int64           `json:"planned"`
	Executed         int64           `json:"executed"`
	Pending          int64           `json:"pending"`
	TotalSpent       int64           `json:"totalSpent"`
}

// MonthPrefix returns the YYYY-MM prefix matching transaction dates of
// the given month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// DaysInMonth returns the calendar day count for (year, month),
// leap-year aware. Zero for an out-of-range month.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// floorDiv divides rounding toward negative infinity, so a negative
// remaining budget still rounds down.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (s *Service) lookupPlanning(userID string, month, year int) (*models.Planning, error) {
	var p models.Planning
	err := s.db.Preload("Currency").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load planning: %w", err)
	}
	return &p, nil
}

// monthScope builds the base transaction query: user + month prefix,
// plus the optional bank-account-currency restriction.
func (s *Service) monthScope(userID string, month, year int, currencyID string) *gorm.DB {
	q := s.db.Model(&models.Transaction{}).
		Where("transactions.user_id = ?", userID).
		Where("transactions.date LIKE ?", MonthPrefix(year, month)+"%")
	if currencyID != "" {
		q = q.Joins("JOIN bank_accounts ON bank_accounts.id = transactions.bank_account_id").
			Where("bank_accounts.currency_id = ?", currencyID)
	}
	return q
}

// sumValue evaluates SUM(value) over the query, defaulting to 0 when no
// rows match.
func sumValue(q *gorm.DB) (int64, error) {
	var total int64
	if err := q.Select("COALESCE(SUM(transactions.value), 0)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

// Summarize computes the planning summary for one user/month/year scope.
// currencyID, when not empty, restricts transactions to those whose bank
// account uses that currency.
func (s *Service) Summarize(userID string, month, year int, currencyID string) (*Summary, error) {
	p, err := s.lookupPlanning(userID, month, year)
	if err != nil {
		return nil, err
	}

	executed, err := sumValue(s.monthScope(userID, month, year, currencyID).
		Where("transactions.type IN ?", ExpenseTypeCodes).
		Where("transactions.paid = ?", PaidDone))
	if err != nil {
		return nil, err
	}

	pending, err := sumValue(s.monthScope(userID, month, year, currencyID).
		Where("transactions.type IN ?", ExpenseTypeCodes).
		Where("transactions.paid = ?", PaidPending))
	if err != nil {
		return nil, err
	}

	monthlyIncome, err := sumValue(s.monthScope(userID, month, year, currencyID).
		Where("transactions.type IN ?", IncomeTypeCodes))
	if err != nil {
		return nil, err
	}

	planned := p.MonthlyIncome
	remaining := planned - executed

	days := DaysInMonth(year, month)
	var availablePerDay int64
	if days > 0 {
		availablePerDay = floorDiv(remaining, int64(days))
	}

	var currency *models.Currency
	if p.Currency.ID != "" {
		c := p.Currency
		currency = &c
	}

	return &Summary{
		ID:              p.ID,
		Planned:         planned,
		Executed:        executed,
		Pending:         pending,
		Remaining:       remaining,
		MonthlyIncome:   monthlyIncome,
		AvailablePerDay: availablePerDay,
		Currency:        currency,
	}, nil
}

// Categories computes the per-category breakdown of the planning's
// budget lines, each with executed/pending/totalSpent recomputed against
// the category's transactions.
//
// The currency filter matches against the planning's own currency, not
// each transaction's: a filter that differs from the planning currency
// yields an empty list.
func (s *Service) Categories(userID string, month, year int, currencyID string) ([]CategoryLine, error) {
	p, err := s.lookupPlanning(userID, month, year)
	if err != nil {
		return nil, err
	}

	if currencyID != "" && p.CurrencyID != currencyID {
		return []CategoryLine{}, nil
	}

	var budgets []models.Budget
	if err := s.db.Preload("Category").
		Where("planning_id = ?", p.ID).
		Order("id").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	var planningCurrency *CurrencyDetail
	if p.Currency.ID != "" {
		planningCurrency = &CurrencyDetail{
			ID:        p.Currency.ID,
			Code:      p.Currency.Code,
			Symbol:    p.Currency.Symbol,
			MinorUnit: p.Currency.MinorUnit,
		}
	}

	lines := make([]CategoryLine, 0, len(budgets))
	for _, b := range budgets {
		categoryScope := func() *gorm.DB {
			return s.monthScope(userID, month, year, currencyID).
				Where("transactions.category_id = ?", b.CategoryID).
				Where("transactions.type IN ?", ExpenseTypeCodes)
		}

		executed, err := sumValue(categoryScope().Where("transactions.paid = ?", PaidDone))
		if err != nil {
			return nil, err
		}
		pending, err := sumValue(categoryScope().Where("transactions.paid = ?", PaidPending))
		if err != nil {
			return nil, err
		}

		lines = append(lines, CategoryLine{
			ID:               b.ID,
			PlanningID:       p.ID,
			PlanningCurrency: planningCurrency,
			Category:         b.Category,
			Planned:          b.PlannedValue,
			Executed:         executed,
			Pending:          pending,
			TotalSpent:       executed + pending,
		})
	}

	return lines, nil
}
