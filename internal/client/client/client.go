package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, name, email string, password []byte, role string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (string, *models.User, error)
	AccessUser(ctx context.Context, token string) (*models.AccessResult, error)
	AccessAdmin(ctx context.Context, token string) (*models.AccessResult, error)
	Ping(ctx context.Context) error
}
