package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// capturePrintln redirects printlnFn into a buffer for the duration of a test.
func capturePrintln(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) { sb.WriteString(fmt.Sprintln(a...)) }
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

func TestRenderMessage_Kinds(t *testing.T) {
	out := capturePrintln(t)
	a := &App{}

	a.renderMessage(models.Message{Sender: models.SenderUser, Body: models.TextBody{Text: "hi"}})
	a.renderMessage(models.Message{Sender: models.SenderBot, Body: models.TextBody{Text: "hello"}})
	a.renderMessage(models.Message{Sender: models.SenderUser, Body: models.ImageBody{URL: "https://x/y.jpg"}})

	require.Contains(t, out.String(), "[you] hi")
	require.Contains(t, out.String(), "[bot] hello")
	require.Contains(t, out.String(), "(image) https://x/y.jpg")
}

func TestRenderMessage_QueryResultShowsPaging(t *testing.T) {
	out := capturePrintln(t)
	a := &App{}

	a.renderMessage(models.Message{
		Sender: models.SenderBot,
		Body: models.QueryResultBody{
			Text:         "Found 25 expense(s).",
			Items:        []models.Expense{{ID: 1, Description: "phở", Amount: -50000, ExpenseDate: "2025-03-01"}},
			Page:         2,
			TotalPages:   3,
			TotalRecords: 25,
		},
	})

	require.Contains(t, out.String(), "phở")
	require.Contains(t, out.String(), "Page 2 of 3")
}

func TestRenderExpenseTable_Empty(t *testing.T) {
	out := capturePrintln(t)
	(&App{}).renderExpenseTable(nil)
	require.Contains(t, out.String(), "no records")
}

func TestCheckboxAndEffective(t *testing.T) {
	require.Equal(t, "[x]", checkbox(true))
	require.Equal(t, "[ ]", checkbox(false))

	edited := "new"
	require.Equal(t, "new (edited)", effective(&edited, "old"))
	require.Equal(t, "old", effective(nil, "old"))
}
