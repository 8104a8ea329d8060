package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/config"
	"github.com/dmitrijs2005/moneytalk/internal/client/conversation"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/client/repositories/session"
	"github.com/dmitrijs2005/moneytalk/internal/client/services"
	"github.com/dmitrijs2005/moneytalk/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the CLI together: configuration, the API client, application
// services and the conversation engine.
type App struct {
	config   *config.Config
	log      logging.Logger
	auth     services.AuthService
	expenses services.ExpenseService
	stats    services.StatisticsService
	engine   *conversation.Engine
	user     *models.UserProfile
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	repo := session.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.HTTPTimeout, session.NewTokenSource(repo), log)

	return &App{
		config:   cfg,
		log:      log,
		auth:     services.NewAuthService(apiClient, db),
		expenses: services.NewExpenseService(apiClient),
		stats:    services.NewStatisticsService(apiClient),
		engine:   conversation.NewEngine(apiClient, log, cfg.HistoryPageSize, cfg.ResultPageSize),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// checkSession handles the forced-logout condition: when a call fails because
// the session is no longer valid, the stored credentials are wiped and the
// user is returned to the logged-out state.
func (a *App) checkSession(ctx context.Context, err error) {
	if err == nil || !services.ForcedLogout(err) {
		return
	}
	printlnFn("Session expired, please log in again.")
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear session", "error", err)
	}
	a.user = nil
}
