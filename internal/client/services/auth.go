// Package services contains application services for the MoneyTalk client.
// This file defines the authentication service: login, session restore,
// logout, and inspection of the stored bearer token.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/client/repositories/session"
	"github.com/dmitrijs2005/moneytalk/internal/common"
	"github.com/dmitrijs2005/moneytalk/internal/dbx"
)

// ErrNotLoggedIn is returned when no session is stored locally.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange an identity for a bearer token and persist the session.
//   - RestoreSession: return the stored profile if a session exists locally.
//   - Logout: wipe the stored session.
//   - SessionExpiresAt: report when the stored token expires.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, id models.Identity) (*models.UserProfile, error)
	RestoreSession(ctx context.Context) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	SessionExpiresAt(ctx context.Context) (time.Time, error)
}

// authService is the concrete AuthService backed by the remote Client and a
// local SQL database for the session.
type authService struct {
	client api.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client api.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getSessionRepo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

// Login authenticates against the server and persists the returned token and
// profile in a single transaction, so a crash never leaves a token without a
// profile or vice versa.
func (a *authService) Login(ctx context.Context, id models.Identity) (*models.UserProfile, error) {
	token, profile, err := a.client.Login(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	encoded, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getSessionRepo(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, string(encoded))
	})
	if err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return profile, nil
}

// RestoreSession returns the locally stored profile, or ErrNotLoggedIn when
// no session exists. It does not contact the server; an expired token
// surfaces later as an auth error on the first API call.
func (a *authService) RestoreSession(ctx context.Context) (*models.UserProfile, error) {
	repo := a.getSessionRepo(a.db)

	if _, err := repo.Get(ctx, common.SessionTokenKey); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	encoded, err := repo.Get(ctx, common.SessionUserKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(encoded), &profile); err != nil {
		return nil, fmt.Errorf("decoding stored profile: %w", err)
	}
	return &profile, nil
}

// Logout wipes the stored session.
func (a *authService) Logout(ctx context.Context) error {
	return a.getSessionRepo(a.db).Clear(ctx)
}

// SessionExpiresAt decodes the stored token without verifying its signature
// (the server is the authority; the client only wants the exp claim for
// display) and returns the expiry time.
func (a *authService) SessionExpiresAt(ctx context.Context) (time.Time, error) {
	token, err := a.getSessionRepo(a.db).Get(ctx, common.SessionTokenKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return time.Time{}, ErrNotLoggedIn
		}
		return time.Time{}, err
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return exp.Time, nil
}

// ForcedLogout reports whether err means the session is no longer valid and
// the stored credentials must be discarded.
func ForcedLogout(err error) bool {
	return errors.Is(err, api.ErrSessionExpired)
}
