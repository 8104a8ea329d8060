package models

// StatisticsSummary aggregates income and spending over a range, with the
// top records on each side.
type StatisticsSummary struct {
	TotalIncome  int64
	TotalExpense int64
	TopIncomes   []Expense
	TopExpenses  []Expense
}

// ChartData is the line-chart series for a range. Income and Expense are
// parallel to Labels; values are already scaled by the backend (Unit says
// by how much, e.g. "k" for thousands).
type ChartData struct {
	Labels       []string
	Legend       []string
	Income       []float64
	Expense      []float64
	Unit         string
	TotalIncome  float64
	TotalExpense float64
}

// Ranges accepted by the statistics endpoints.
const (
	RangeToday = "today"
	Range7d    = "7d"
	Range30d   = "30d"
	Range1y    = "1y"
)
