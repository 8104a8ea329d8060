package models

// RequestType classifies a pending expense operation proposed by the bot.
type RequestType string

const (
	RequestInsertExpenses RequestType = "insert_expenses"
	RequestUpdateExpenses RequestType = "update_expenses"
	RequestDeleteExpenses RequestType = "delete_expenses"
	RequestQueryExpenses  RequestType = "query_expenses"
)

// Draft is the closed set of editable operation parameters, tagged by the
// request type that produced them.
type Draft interface {
	RequestType() RequestType
}

// InsertItem is one candidate expense line in an insert draft. Amount is kept
// as text so that partially typed values ("", "-") survive editing; it is
// parsed only at confirm time.
type InsertItem struct {
	Description string
	Amount      string
	ExpenseDate string
	Included    bool
}

// InsertDraft proposes a list of new expenses.
type InsertDraft struct {
	Items []InsertItem
}

func (InsertDraft) RequestType() RequestType { return RequestInsertExpenses }

// ExpenseSnapshot is the pre-edit state of the expense an update targets.
type ExpenseSnapshot struct {
	Description string
	Amount      int64
	ExpenseDate string
}

// UpdateDraft proposes field changes to one existing expense. The Updated*
// fields stay nil until the user edits them; the effective value of each
// field is the edited one if set, else the original.
type UpdateDraft struct {
	TargetID           int64
	UpdatedDescription *string
	UpdatedAmount      *string
	UpdatedDate        *string
	Original           ExpenseSnapshot
}

func (UpdateDraft) RequestType() RequestType { return RequestUpdateExpenses }

// DeleteItem is one candidate expense in a delete draft.
type DeleteItem struct {
	ID          int64
	Description string
	Amount      int64
	ExpenseDate string
	Included    bool
}

// DeleteDraft proposes deleting a set of existing expenses.
type DeleteDraft struct {
	Items []DeleteItem
}

func (DeleteDraft) RequestType() RequestType { return RequestDeleteExpenses }

// QueryDraft proposes a filtered expense search. Amount bounds are kept as
// text for the same reason as InsertItem.Amount.
type QueryDraft struct {
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
	Keywords  []string
}

func (QueryDraft) RequestType() RequestType { return RequestQueryExpenses }
