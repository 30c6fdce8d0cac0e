package planning

import (
	"errors"
	"testing"

	"github.com/bruno-duarte/afinpe-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ============ test fixtures ============

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps every query on the same :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Icon{},
		&models.Color{},
		&models.Currency{},
		&models.Category{},
		&models.BankAccount{},
		&models.Planning{},
		&models.Budget{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func intPtr(v int) *int { return &v }

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

const testUser = "user-1"

func seedCurrency(t *testing.T, db *gorm.DB, id, code string) *models.Currency {
	t.Helper()
	c := &models.Currency{
		Base:      models.Base{ID: id},
		Code:      code,
		Symbol:    "$",
		MinorUnit: 2,
		Image:     "img-" + id,
	}
	mustCreate(t, db, c)
	return c
}

func seedPlanning(t *testing.T, db *gorm.DB, currencyID string, month, year int, income int64) *models.Planning {
	t.Helper()
	p := &models.Planning{
		Month:         month,
		Year:          year,
		MonthlyIncome: income,
		UserID:        testUser,
		CurrencyID:    currencyID,
	}
	mustCreate(t, db, p)
	return p
}

func seedTransaction(t *testing.T, db *gorm.DB, date string, typeCode int, value int64, paid *int, categoryID, accountID *string) {
	t.Helper()
	tx := &models.Transaction{
		Date:          date,
		Value:         value,
		Type:          typeCode,
		Paid:          paid,
		UserID:        testUser,
		CategoryID:    categoryID,
		BankAccountID: accountID,
	}
	mustCreate(t, db, tx)
}

// ============ calendar helpers ============

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 10, 31},
		{2024, 4, 30},
		{2024, 12, 31},
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 but not 400
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestDaysInMonth_OutOfRange(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if got := DaysInMonth(2024, month); got != 0 {
			t.Errorf("DaysInMonth(2024, %d) = %d, want 0", month, got)
		}
	}
}

// floor division must round toward negative infinity, like the source
// numbers expect for an overspent month
func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{380000, 31, 12258},
		{10, 3, 3},
		{-10, 3, -4},
		{-150000, 31, -4839},
		{9, 3, 3},
		{-9, 3, -3},
		{0, 31, 0},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMonthPrefix(t *testing.T) {
	if got := MonthPrefix(2024, 10); got != "2024-10" {
		t.Errorf("MonthPrefix(2024, 10) = %q, want 2024-10", got)
	}
	if got := MonthPrefix(2024, 3); got != "2024-03" {
		t.Errorf("MonthPrefix(2024, 3) = %q, want 2024-03", got)
	}
}

// ============ summary ============

func TestSummarize_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Summarize(testUser, 10, 2024, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Summarize error = %v, want ErrNotFound", err)
	}
}

func TestSummarize_NoTransactions(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	seedPlanning(t, db, "cur-1", 10, 2024, 500000)
	svc := NewService(db)

	s, err := svc.Summarize(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Executed != 0 || s.Pending != 0 || s.MonthlyIncome != 0 {
		t.Errorf("empty month: executed=%d pending=%d income=%d, want all 0",
			s.Executed, s.Pending, s.MonthlyIncome)
	}
	if s.Remaining != s.Planned {
		t.Errorf("remaining = %d, want planned %d", s.Remaining, s.Planned)
	}
}

func TestSummarize_MonthScenario(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	p := seedPlanning(t, db, "cur-1", 10, 2024, 500000)

	seedTransaction(t, db, "2024-10-05", TypeExpense, 120000, intPtr(1), nil, nil)
	seedTransaction(t, db, "2024-10-12", TypeCreditCardExpense, 30000, intPtr(0), nil, nil)
	seedTransaction(t, db, "2024-10-01", TypeIncome, 500000, nil, nil, nil)

	svc := NewService(db)
	s, err := svc.Summarize(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.ID != p.ID {
		t.Errorf("id = %q, want %q", s.ID, p.ID)
	}
	if s.Planned != 500000 {
		t.Errorf("planned = %d, want 500000", s.Planned)
	}
	if s.Executed != 120000 {
		t.Errorf("executed = %d, want 120000", s.Executed)
	}
	if s.Pending != 30000 {
		t.Errorf("pending = %d, want 30000", s.Pending)
	}
	if s.Remaining != 380000 {
		t.Errorf("remaining = %d, want 380000", s.Remaining)
	}
	if s.MonthlyIncome != 500000 {
		t.Errorf("monthlyIncome = %d, want 500000", s.MonthlyIncome)
	}
	if s.AvailablePerDay != 12258 { // 380000 / 31 days
		t.Errorf("availablePerDay = %d, want 12258", s.AvailablePerDay)
	}
	if s.Currency == nil || s.Currency.ID != "cur-1" {
		t.Errorf("currency = %+v, want cur-1", s.Currency)
	}
}

func TestSummarize_ExcludesOutOfScopeTransactions(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	seedPlanning(t, db, "cur-1", 10, 2024, 100000)

	// other month, other user, unknown type, balance-income type: all excluded
	seedTransaction(t, db, "2024-09-30", TypeExpense, 11111, intPtr(1), nil, nil)
	seedTransaction(t, db, "2024-10-10", 99, 22222, intPtr(1), nil, nil)
	seedTransaction(t, db, "2024-10-10", TypeBalanceIncome, 33333, nil, nil, nil)
	other := models.Transaction{
		Date: "2024-10-10", Value: 44444, Type: TypeExpense,
		Paid: intPtr(1), UserID: "someone-else",
	}
	mustCreate(t, db, &other)
	// paid = null counts in neither executed nor pending
	seedTransaction(t, db, "2024-10-15", TypeExpense, 55555, nil, nil, nil)

	svc := NewService(db)
	s, err := svc.Summarize(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Executed != 0 || s.Pending != 0 || s.MonthlyIncome != 0 {
		t.Errorf("executed=%d pending=%d income=%d, want all 0",
			s.Executed, s.Pending, s.MonthlyIncome)
	}
}

func TestSummarize_NegativeRemainingFloors(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	seedPlanning(t, db, "cur-1", 10, 2024, 100000)
	seedTransaction(t, db, "2024-10-07", TypeExpense, 250000, intPtr(1), nil, nil)

	svc := NewService(db)
	s, err := svc.Summarize(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Remaining != -150000 {
		t.Errorf("remaining = %d, want -150000", s.Remaining)
	}
	// -150000 // 31 floors to -4839, not -4838
	if s.AvailablePerDay != -4839 {
		t.Errorf("availablePerDay = %d, want -4839", s.AvailablePerDay)
	}
}

func TestSummarize_CurrencyFilter(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-brl", "BRL")
	seedCurrency(t, db, "cur-usd", "USD")
	seedPlanning(t, db, "cur-brl", 10, 2024, 500000)

	brlAccount := models.BankAccount{
		Base: models.Base{ID: "acc-brl"}, Name: "brl", Type: 1,
		ColorID: "color-1", UserID: testUser, CurrencyID: "cur-brl",
	}
	usdAccount := models.BankAccount{
		Base: models.Base{ID: "acc-usd"}, Name: "usd", Type: 1,
		ColorID: "color-1", UserID: testUser, CurrencyID: "cur-usd",
	}
	mustCreate(t, db, &brlAccount)
	mustCreate(t, db, &usdAccount)

	seedTransaction(t, db, "2024-10-05", TypeExpense, 40000, intPtr(1), nil, &brlAccount.ID)
	seedTransaction(t, db, "2024-10-06", TypeExpense, 70000, intPtr(1), nil, &usdAccount.ID)
	// no bank account: dropped whenever a currency filter applies
	seedTransaction(t, db, "2024-10-07", TypeExpense, 5000, intPtr(1), nil, nil)

	svc := NewService(db)

	s, err := svc.Summarize(testUser, 10, 2024, "cur-brl")
	if err != nil {
		t.Fatalf("Summarize filtered: %v", err)
	}
	if s.Executed != 40000 {
		t.Errorf("filtered executed = %d, want 40000", s.Executed)
	}

	s, err = svc.Summarize(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Summarize unfiltered: %v", err)
	}
	if s.Executed != 115000 {
		t.Errorf("unfiltered executed = %d, want 115000", s.Executed)
	}
}

// ============ category breakdown ============

func seedCategory(t *testing.T, db *gorm.DB, id, description string) *models.Category {
	t.Helper()
	c := &models.Category{
		Base:        models.Base{ID: id},
		Description: description,
		Type:        1,
		IconID:      "icon-1",
		ColorID:     "color-1",
	}
	mustCreate(t, db, c)
	return c
}

func TestCategories_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Categories(testUser, 10, 2024, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Categories error = %v, want ErrNotFound", err)
	}
}

func TestCategories_Breakdown(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	p := seedPlanning(t, db, "cur-1", 10, 2024, 500000)
	cat := seedCategory(t, db, "cat-food", "Food")

	budget := models.Budget{
		PlannedValue: 100000,
		CategoryID:   cat.ID,
		PlanningID:   p.ID,
	}
	mustCreate(t, db, &budget)

	seedTransaction(t, db, "2024-10-03", TypeExpense, 40000, intPtr(1), &cat.ID, nil)
	seedTransaction(t, db, "2024-10-04", TypeCreditCardExpense, 10000, intPtr(0), &cat.ID, nil)
	// another category: must not leak into this budget line
	otherCat := seedCategory(t, db, "cat-other", "Other")
	seedTransaction(t, db, "2024-10-05", TypeExpense, 77777, intPtr(1), &otherCat.ID, nil)

	svc := NewService(db)
	lines, err := svc.Categories(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}

	line := lines[0]
	if line.PlanningID != p.ID {
		t.Errorf("planningId = %q, want %q", line.PlanningID, p.ID)
	}
	if line.Planned != 100000 {
		t.Errorf("planned = %d, want 100000", line.Planned)
	}
	if line.Executed != 40000 {
		t.Errorf("executed = %d, want 40000", line.Executed)
	}
	if line.Pending != 10000 {
		t.Errorf("pending = %d, want 10000", line.Pending)
	}
	if line.TotalSpent != 50000 {
		t.Errorf("totalSpent = %d, want 50000", line.TotalSpent)
	}
	if line.TotalSpent != line.Executed+line.Pending {
		t.Error("totalSpent must equal executed + pending")
	}
	if line.Category.Description != "Food" {
		t.Errorf("category description = %q, want Food", line.Category.Description)
	}
	if line.PlanningCurrency == nil || line.PlanningCurrency.Code != "BRL" {
		t.Errorf("planningCurrency = %+v, want BRL", line.PlanningCurrency)
	}
}

func TestCategories_ZeroTransactionsBudget(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	p := seedPlanning(t, db, "cur-1", 10, 2024, 500000)
	cat := seedCategory(t, db, "cat-idle", "Idle")
	mustCreate(t, db, &models.Budget{
		PlannedValue: 25000,
		CategoryID:   cat.ID,
		PlanningID:   p.ID,
	})

	svc := NewService(db)
	lines, err := svc.Categories(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	line := lines[0]
	if line.Executed != 0 || line.Pending != 0 || line.TotalSpent != 0 {
		t.Errorf("idle budget: executed=%d pending=%d totalSpent=%d, want all 0",
			line.Executed, line.Pending, line.TotalSpent)
	}
}

// the currency filter matches the planning's own currency: a mismatch
// yields an empty breakdown, by documented policy
func TestCategories_CurrencyMismatchIsEmpty(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-brl", "BRL")
	seedCurrency(t, db, "cur-usd", "USD")
	p := seedPlanning(t, db, "cur-brl", 10, 2024, 500000)
	cat := seedCategory(t, db, "cat-food", "Food")
	mustCreate(t, db, &models.Budget{
		PlannedValue: 100000,
		CategoryID:   cat.ID,
		PlanningID:   p.ID,
	})

	svc := NewService(db)

	lines, err := svc.Categories(testUser, 10, 2024, "cur-usd")
	if err != nil {
		t.Fatalf("Categories mismatch: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("mismatched currency: len(lines) = %d, want 0", len(lines))
	}

	lines, err = svc.Categories(testUser, 10, 2024, "cur-brl")
	if err != nil {
		t.Fatalf("Categories match: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("matching currency: len(lines) = %d, want 1", len(lines))
	}
}

func TestCategories_StableOrder(t *testing.T) {
	db := newTestDB(t)
	seedCurrency(t, db, "cur-1", "BRL")
	p := seedPlanning(t, db, "cur-1", 10, 2024, 500000)

	for _, id := range []string{"cat-a", "cat-b", "cat-c"} {
		cat := seedCategory(t, db, id, id)
		mustCreate(t, db, &models.Budget{
			Base:         models.Base{ID: "budget-" + id},
			PlannedValue: 1000,
			CategoryID:   cat.ID,
			PlanningID:   p.ID,
		})
	}

	svc := NewService(db)
	lines, err := svc.Categories(testUser, 10, 2024, "")
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	want := []string{"budget-cat-a", "budget-cat-b", "budget-cat-c"}
	for i, line := range lines {
		if line.ID != want[i] {
			t.Errorf("lines[%d].ID = %q, want %q", i, line.ID, want[i])
		}
	}
}
