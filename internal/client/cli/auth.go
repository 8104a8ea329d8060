package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// login prompts for the identity fields, authenticates and loads the initial
// history page. The subject identifier is read without echo since it acts as
// the credential.
func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return
	}
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return
	}
	sub, err := GetSecret("Identity token", os.Stdout)
	if err != nil {
		return
	}

	user, err := a.auth.Login(ctx, models.Identity{Sub: sub, Email: email, Name: name})
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.user = user
	printlnFn("Logged in as", user.Email)

	if err := a.engine.LoadHistory(ctx); err != nil {
		a.reportError(ctx, err)
		return
	}
	a.showTranscript()
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		a.reportError(ctx, err)
		return
	}
	a.user = nil
	printlnFn("Logged out.")
}

func (a *App) whoami(ctx context.Context) {
	printlnFn("User:", a.user.Name, "<"+a.user.Email+">")
	if exp, err := a.auth.SessionExpiresAt(ctx); err == nil {
		printlnFn("Session expires:", exp.Local().Format("02/01/2006 15:04"))
	}
}
