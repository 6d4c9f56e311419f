// Package users declares the user directory contract and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the user directory.
type Repository interface {
	// GetUserByEmail returns common.ErrorNotFound when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// Create stores user, assigning ID and CreatedAt. It returns
	// common.ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// NormalizeEmail is the canonical form under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
