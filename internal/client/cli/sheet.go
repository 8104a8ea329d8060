package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// listExpenses renders one page of the datasheet. Optional positional
// arguments: page, sort field (expense_date|amount), sort order (asc|desc),
// keyword.
func (a *App) listExpenses(ctx context.Context, args []string) {
	pageNum := 1
	filter := models.DefaultFilter()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			printlnFn("Usage: expenses [page] [sort] [order] [keyword]")
			return
		}
		pageNum = n
	}
	if len(args) > 1 {
		filter.SortField = args[1]
	}
	if len(args) > 2 {
		filter.SortOrder = args[2]
	}
	if len(args) > 3 {
		filter.Keyword = strings.Join(args[3:], " ")
	}

	page, err := a.expenses.List(ctx, filter, pageNum, a.config.ResultPageSize)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.renderExpenseTable(page.Expenses)
	printlnFn("Page", page.Page, "of", page.TotalPages, "-", page.TotalRecords, "record(s)")
}

// addExpense persists one expense outside the chat flow.
func (a *App) addExpense(ctx context.Context, args []string) {
	if len(args) < 3 {
		printlnFn("Usage: add <date> <amount> <description>")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Usage: add <date> <amount> <description>")
		return
	}

	added, err := a.expenses.Add(ctx, []api.NewExpense{{
		Description: strings.Join(args[2:], " "),
		Amount:      amount,
		ExpenseDate: args[0],
	}})
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.renderExpenseTable(added)
}

// updateExpense edits one field of an existing expense.
func (a *App) updateExpense(ctx context.Context, args []string) {
	if len(args) < 3 {
		printlnFn("Usage: upd <id> <desc|amount|date> <value>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: upd <id> <desc|amount|date> <value>")
		return
	}

	var patch api.ExpensePatch
	value := strings.Join(args[2:], " ")
	switch args[1] {
	case "desc":
		patch.Description = &value
	case "amount":
		amount, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			printlnFn("Amount must be an integer.")
			return
		}
		patch.Amount = &amount
	case "date":
		patch.ExpenseDate = &value
	default:
		printlnFn("Unknown field:", args[1])
		return
	}

	updated, err := a.expenses.Update(ctx, id, patch)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.renderExpenseTable([]models.Expense{*updated})
}

// deleteExpense removes one expense by id.
func (a *App) deleteExpense(ctx context.Context, args []string) {
	if len(args) != 1 {
		printlnFn("Usage: del <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: del <id>")
		return
	}
	if err := a.expenses.DeleteOne(ctx, id); err != nil {
		a.reportError(ctx, err)
		return
	}
	printlnFn("Deleted expense", "#"+args[0])
}

func (a *App) showStats(ctx context.Context, args []string) {
	rng := ""
	if len(args) > 0 {
		rng = args[0]
	}

	s, err := a.stats.Summary(ctx, rng, 0)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.renderSummary(s)
}

func (a *App) showChart(ctx context.Context, args []string) {
	rng := ""
	if len(args) > 0 {
		rng = args[0]
	}

	c, err := a.stats.Chart(ctx, rng)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.renderChart(c)
}
