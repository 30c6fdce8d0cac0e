package planning

// Transaction type codes as stored in the transactions.type column.
const (
	TypeTransfer          = 1
	TypeIncome            = 2
	TypeExpense           = 3
	TypeBalanceIncome     = 4 // income counted by the running-balance listing, not by planning
	TypeCreditCardExpense = 5
)

// Kind is the semantic class of a transaction type code.
type Kind int

const (
	KindOther Kind = iota
	KindIncome
	KindExpense
	KindCreditCardExpense
	KindTransfer
)

// Classify maps a type code to its kind. The table is fixed: any future
// code must be added here explicitly, and unknown codes classify as
// Other so they are silently excluded from every aggregate.
func Classify(typeCode int) Kind {
	switch typeCode {
	case TypeIncome, TypeBalanceIncome:
		return KindIncome
	case TypeExpense:
		return KindExpense
	case TypeCreditCardExpense:
		return KindCreditCardExpense
	case TypeTransfer:
		return KindTransfer
	}
	return KindOther
}

// CountsAsExpense reports whether the kind counts toward the monthly
// expense budget (ordinary and credit-card expenses both do).
func (k Kind) CountsAsExpense() bool {
	return k == KindExpense || k == KindCreditCardExpense
}

// Type code sets used in aggregation queries.
var (
	// ExpenseTypeCodes are the codes summed as executed/pending expense.
	ExpenseTypeCodes = []int{TypeExpense, TypeCreditCardExpense}
	// IncomeTypeCodes are the codes summed as recorded monthly income.
	IncomeTypeCodes = []int{TypeIncome}
	// BalanceIncomeTypeCodes are the codes the transaction listing counts
	// as income when computing its running balance.
	BalanceIncomeTypeCodes = []int{TypeBalanceIncome}
)

// Paid flag values (transactions.paid; nil means not applicable).
const (
	PaidPending = 0
	PaidDone    = 1
)
