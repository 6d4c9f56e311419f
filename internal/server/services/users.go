// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	AccessToken string
	User        models.PublicUser
}

// UserService provides the two public account operations:
//   - Register: create a user with a hashed password
//   - Login: verify credentials and mint an access token
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
}

// NewUserService wires the directory, hasher and token service together.
func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates an account. An empty role defaults to common.DefaultRole.
// A taken email yields common.ErrDuplicateEmail and leaves the existing
// account untouched.
func (s *UserService) Register(ctx context.Context, name, email, password, role string) (*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = common.DefaultRole
	}

	user, err := repo.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// Login verifies email/password and returns a fresh access token. Both an
// unknown email and a wrong password surface as common.ErrInvalidCredentials;
// the wrapped cause (common.ErrUserNotFound / common.ErrWrongPassword) is
// kept for logging.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidCredentials, common.ErrUserNotFound)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidCredentials, common.ErrWrongPassword)
	}

	token, err := s.tokens.Mint(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error minting token: %w", err)
	}

	return &LoginResult{AccessToken: token, User: user.Public()}, nil
}
