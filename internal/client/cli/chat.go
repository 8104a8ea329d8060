package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moneytalk/internal/client/conversation"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

func (a *App) send(ctx context.Context, text string) {
	if text == "" {
		printlnFn("Usage: send <text>")
		return
	}
	if err := a.engine.SendText(ctx, text); err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showTail()
}

func (a *App) sendImage(ctx context.Context, args []string) {
	if len(args) != 1 {
		printlnFn("Usage: image <path>")
		return
	}
	if err := a.engine.SendImage(ctx, args[0]); err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showTail()
}

func (a *App) history(ctx context.Context) {
	if err := a.engine.LoadHistory(ctx); err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showTranscript()
}

func (a *App) older(ctx context.Context) {
	n, err := a.engine.LoadOlder(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	printlnFn("Loaded", n, "older message(s).")
	a.showTranscript()
}

func (a *App) confirm(ctx context.Context) {
	if err := a.engine.Confirm(ctx); err != nil {
		if errors.Is(err, conversation.ErrNoPending) {
			printlnFn("Nothing to confirm.")
			return
		}
		a.reportError(ctx, err)
		return
	}
	a.showTail()
}

func (a *App) cancel(ctx context.Context) {
	if err := a.engine.Cancel(ctx); err != nil {
		if errors.Is(err, conversation.ErrNoPending) {
			printlnFn("Nothing to cancel.")
			return
		}
		a.reportError(ctx, err)
		return
	}
	printlnFn("Cancelled.")
}

// page fetches another page of the most recent search result in the
// transcript.
func (a *App) page(ctx context.Context, args []string) {
	if len(args) != 1 {
		printlnFn("Usage: page <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Usage: page <n>")
		return
	}

	msgs := a.engine.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if _, ok := msgs[i].Body.(models.QueryResultBody); ok {
			if err := a.engine.FetchResultPage(ctx, msgs[i].ID, n); err != nil {
				a.reportError(ctx, err)
				return
			}
			if m, ok := a.engine.Get(msgs[i].ID); ok {
				a.renderMessage(m)
			}
			return
		}
	}
	printlnFn("No search result to page through.")
}

// setDraftField edits one field of the pending draft. The grammar depends on
// the pending operation: insert items are addressed by index, update and
// query fields by name only.
func (a *App) setDraftField(ctx context.Context, args []string) {
	p := a.engine.Pending()
	if p == nil {
		printlnFn("Nothing is pending.")
		return
	}
	if len(args) < 2 {
		printlnFn("Usage: set <field> [index] <value>")
		return
	}
	field := args[0]

	var err error
	switch p.RequestType {
	case models.RequestInsertExpenses:
		if len(args) < 3 {
			printlnFn("Usage: set <desc|amount|date> <index> <value>")
			return
		}
		i, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			printlnFn("Usage: set <desc|amount|date> <index> <value>")
			return
		}
		value := strings.Join(args[2:], " ")
		switch field {
		case "desc":
			err = a.engine.EditInsertDescription(i, value)
		case "amount":
			err = a.engine.EditInsertAmount(i, value)
		case "date":
			err = a.engine.EditInsertDate(i, value)
		default:
			printlnFn("Unknown field:", field)
			return
		}

	case models.RequestUpdateExpenses:
		value := strings.Join(args[1:], " ")
		switch field {
		case "desc":
			err = a.engine.EditUpdateDescription(value)
		case "amount":
			err = a.engine.EditUpdateAmount(value)
		case "date":
			err = a.engine.EditUpdateDate(value)
		default:
			printlnFn("Unknown field:", field)
			return
		}

	case models.RequestQueryExpenses:
		value := strings.Join(args[1:], " ")
		switch field {
		case "start":
			err = a.engine.EditQueryStartDate(value)
		case "end":
			err = a.engine.EditQueryEndDate(value)
		case "min":
			err = a.engine.EditQueryMinAmount(value)
		case "max":
			err = a.engine.EditQueryMaxAmount(value)
		case "keywords":
			err = a.engine.EditQueryKeywords(value)
		default:
			printlnFn("Unknown field:", field)
			return
		}

	default:
		printlnFn("The pending operation has no editable fields of that kind.")
		return
	}

	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showDraft()
}

// setIncluded toggles one item of a pending insert or delete draft.
func (a *App) setIncluded(ctx context.Context, args []string, included bool) {
	p := a.engine.Pending()
	if p == nil {
		printlnFn("Nothing is pending.")
		return
	}
	if len(args) != 1 {
		printlnFn("Usage: include|exclude <index>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Usage: include|exclude <index>")
		return
	}

	switch p.RequestType {
	case models.RequestInsertExpenses:
		err = a.engine.EditInsertIncluded(i, included)
	case models.RequestDeleteExpenses:
		err = a.engine.EditDeleteIncluded(i, included)
	default:
		printlnFn("The pending operation has no item list.")
		return
	}
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showDraft()
}
