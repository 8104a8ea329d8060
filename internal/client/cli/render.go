package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moneytalk/internal/client/conversation"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

const tailLength = 4

func (a *App) showTranscript() {
	for _, m := range a.engine.Messages() {
		a.renderMessage(m)
	}
	a.showDraft()
}

// showTail renders only the last few messages, used after sending.
func (a *App) showTail() {
	msgs := a.engine.Messages()
	if len(msgs) > tailLength {
		msgs = msgs[len(msgs)-tailLength:]
	}
	for _, m := range msgs {
		a.renderMessage(m)
	}
	a.showDraft()
}

func (a *App) renderMessage(m models.Message) {
	prefix := "you"
	if m.Sender == models.SenderBot {
		prefix = "bot"
	}

	switch body := m.Body.(type) {
	case models.TextBody:
		printlnFn(fmt.Sprintf("[%s] %s", prefix, body.Text))
	case models.ImageBody:
		printlnFn(fmt.Sprintf("[%s] (image) %s", prefix, body.URL))
	case models.ConfirmationBody:
		printlnFn(fmt.Sprintf("[%s] %s", prefix, body.Text))
	case models.QueryResultBody:
		printlnFn(fmt.Sprintf("[%s] %s", prefix, body.Text))
		a.renderExpenseTable(body.Items)
		printlnFn("Page", body.Page, "of", body.TotalPages, "-", body.TotalRecords, "record(s)")
	}
}

// showDraft renders the editable pending operation, if any.
func (a *App) showDraft() {
	p := a.engine.Pending()
	if p == nil {
		return
	}

	switch d := p.Draft.(type) {
	case models.InsertDraft:
		printlnFn("Pending: add expenses")
		for i, it := range d.Items {
			printlnFn(fmt.Sprintf("  %s %d. %s | %s | %s",
				checkbox(it.Included), i, it.Description, it.Amount, conversation.FormatDate(it.ExpenseDate)))
		}
	case models.UpdateDraft:
		printlnFn(fmt.Sprintf("Pending: update expense #%d", d.TargetID))
		printlnFn("  desc:  ", effective(d.UpdatedDescription, d.Original.Description))
		printlnFn("  amount:", effective(d.UpdatedAmount, conversation.FormatAmount(d.Original.Amount)))
		printlnFn("  date:  ", effective(d.UpdatedDate, conversation.FormatDate(d.Original.ExpenseDate)))
	case models.DeleteDraft:
		printlnFn("Pending: delete expenses")
		for i, it := range d.Items {
			printlnFn(fmt.Sprintf("  %s %d. #%d %s | %s | %s",
				checkbox(it.Included), i, it.ID, it.Description,
				conversation.FormatAmount(it.Amount), conversation.FormatDate(it.ExpenseDate)))
		}
	case models.QueryDraft:
		printlnFn("Pending: search expenses")
		printlnFn("  start:   ", d.StartDate)
		printlnFn("  end:     ", d.EndDate)
		printlnFn("  min:     ", d.MinAmount)
		printlnFn("  max:     ", d.MaxAmount)
		printlnFn("  keywords:", strings.Join(d.Keywords, ", "))
	}
	printlnFn("Type 'confirm' to apply or 'cancel' to discard.")
}

func (a *App) renderExpenseTable(items []models.Expense) {
	if len(items) == 0 {
		printlnFn("  (no records)")
		return
	}
	for _, x := range items {
		printlnFn(fmt.Sprintf("  #%d %s | %s | %s",
			x.ID, conversation.FormatDate(x.ExpenseDate), x.Description, conversation.FormatAmount(x.Amount)))
	}
}

func (a *App) renderSummary(s *models.StatisticsSummary) {
	printlnFn("Income: ", conversation.FormatAmount(s.TotalIncome))
	printlnFn("Expense:", conversation.FormatAmount(s.TotalExpense))
	if len(s.TopIncomes) > 0 {
		printlnFn("Top incomes:")
		a.renderExpenseTable(s.TopIncomes)
	}
	if len(s.TopExpenses) > 0 {
		printlnFn("Top expenses:")
		a.renderExpenseTable(s.TopExpenses)
	}
}

func (a *App) renderChart(c *models.ChartData) {
	unit := c.Unit
	if unit == "" {
		unit = "₫"
	}
	for i, label := range c.Labels {
		var in, out float64
		if i < len(c.Income) {
			in = c.Income[i]
		}
		if i < len(c.Expense) {
			out = c.Expense[i]
		}
		printlnFn(fmt.Sprintf("  %-12s income %10.1f%s  expense %10.1f%s", label, in, unit, out, unit))
	}
	printlnFn(fmt.Sprintf("Total: income %.1f%s, expense %.1f%s", c.TotalIncome, unit, c.TotalExpense, unit))
}

func checkbox(included bool) string {
	if included {
		return "[x]"
	}
	return "[ ]"
}

func effective(edited *string, original string) string {
	if edited != nil {
		return *edited + " (edited)"
	}
	return original
}
