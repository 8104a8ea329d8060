package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/moneytalk/internal/client/migrations"
	"github.com/dmitrijs2005/moneytalk/internal/common"
	"github.com/pressly/goose/v3"
)

// InitDatabase opens (or creates) the session database at dsn and brings its
// schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating session db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// TokenSource reads the bearer token from the session store on every call.
type TokenSource struct {
	repo Repository
}

func NewTokenSource(repo Repository) *TokenSource {
	return &TokenSource{repo: repo}
}

func (t *TokenSource) Token(ctx context.Context) (string, error) {
	token, err := t.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return "", err
	}
	return token, nil
}
