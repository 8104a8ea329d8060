package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moneytalk/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

// Root starts the read–eval–print loop.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on App. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to MoneyTalk CLI (type 'help' for commands)")

	if user, err := a.auth.RestoreSession(ctx); err == nil {
		a.user = user
		printlnFn("Restored session for", user.Email)
		if err := a.engine.LoadHistory(ctx); err != nil {
			a.reportError(ctx, err)
		} else {
			a.showTranscript()
		}
	} else if !errors.Is(err, services.ErrNotLoggedIn) {
		a.reportError(ctx, err)
	}

	for {
		fmt.Printf("mt %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, exit")
			case "login":
				a.login(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Please log in first (type 'login').")
			}
			continue
		}

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "send":
			a.send(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimRight(line, "\r\n"), "send")))
		case "image":
			a.sendImage(ctx, args)
		case "history":
			a.history(ctx)
		case "older":
			a.older(ctx)
		case "show":
			a.showTranscript()
		case "draft":
			a.showDraft()
		case "set":
			a.setDraftField(ctx, args)
		case "include":
			a.setIncluded(ctx, args, true)
		case "exclude":
			a.setIncluded(ctx, args, false)
		case "confirm":
			a.confirm(ctx)
		case "cancel":
			a.cancel(ctx)
		case "page":
			a.page(ctx, args)
		case "expenses":
			a.listExpenses(ctx, args)
		case "add":
			a.addExpense(ctx, args)
		case "upd":
			a.updateExpense(ctx, args)
		case "del":
			a.deleteExpense(ctx, args)
		case "stats":
			a.showStats(ctx, args)
		case "chart":
			a.showChart(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	printlnFn("Chat:      send <text>, image <path>, history, older, show")
	printlnFn("Pending:   draft, set <field> [index] <value>, include <i>, exclude <i>, confirm, cancel, page <n>")
	printlnFn("Datasheet: expenses [page] [sort] [order] [keyword], add <date> <amount> <desc>, upd <id> <field> <value>, del <id>")
	printlnFn("Stats:     stats [today|7d|30d|1y], chart [7d|30d|1y]")
	printlnFn("Session:   login, logout, whoami, exit")
}

// reportError prints a failure for the user, preferring the backend-supplied
// message when there is one, and handles forced logout.
func (a *App) reportError(ctx context.Context, err error) {
	a.checkSession(ctx, err)
	printlnFn("Error:", err.Error())
}
