package models

// Expense is one expense record as returned by the backend. Amount is in
// currency minor units and is negative for spending, positive for income.
type Expense struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ExpenseDate string `json:"expense_date"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ExpenseFilter is the parameter set of a paged expense listing. Empty
// strings mean "not constrained"; the backend treats them the same way.
type ExpenseFilter struct {
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
	Keyword   string
	SortField string
	SortOrder string
}

// Sortable fields and orders accepted by the listing endpoint.
const (
	SortByDate   = "expense_date"
	SortByAmount = "amount"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultFilter returns the listing parameters used when the user has not
// chosen anything: newest expenses first, no constraints.
func DefaultFilter() ExpenseFilter {
	return ExpenseFilter{SortField: SortByDate, SortOrder: SortDesc}
}
