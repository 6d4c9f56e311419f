// Package services contains application services for the AuthKeeper client.
// This file defines the authentication service: register, login, calls to
// the protected routes, and the locally stored session.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
)

// Session keys in the metadata table.
const (
	keyAccessToken = "access_token"
	keyUser        = "user"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: authenticate and persist the access token and user locally.
//   - AccessUser / AccessAdmin: call the protected routes with the stored token.
//   - CurrentUser: the locally stored user, or nil when logged out.
//   - Logout: forget the local session. Nothing is revoked server-side.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte, role string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	AccessUser(ctx context.Context) (*models.AccessResult, error)
	AccessAdmin(ctx context.Context) (*models.AccessResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// saveSession stores the token and user together; either both are replaced
// or neither is.
func (a *authService) saveSession(ctx context.Context, token string, userJSON []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, userJSON)
	})
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte, role string) (*models.User, error) {
	return a.client.Register(ctx, name, email, password, role)
}

// Login replaces any previously stored session on success. A failed login
// leaves the existing session untouched.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	if err := a.saveSession(ctx, token, userJSON); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return user, nil
}

func (a *authService) token(ctx context.Context) (string, error) {
	token, err := a.getMetadataRepo().Get(ctx, keyAccessToken)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", client.ErrNotLoggedIn
	}
	return string(token), nil
}

func (a *authService) AccessUser(ctx context.Context) (*models.AccessResult, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.AccessUser(ctx, token)
}

func (a *authService) AccessAdmin(ctx context.Context) (*models.AccessResult, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.AccessAdmin(ctx, token)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := a.getMetadataRepo().Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decoding stored user: %w", err)
	}
	return &u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.getMetadataRepo().Delete(ctx, keyAccessToken, keyUser)
}

func (a *authService) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", client.ErrUnavailable, err)
	}
	return nil
}
