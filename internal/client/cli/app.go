package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	as := services.NewAuthService(apiClient, db)

	return &App{
		config:      c,
		authService: as,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the REPL on stdin and closes the session database when it ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable (%v)\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.status(ctx), a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	u, err := a.authService.CurrentUser(ctx)
	return err == nil && u != nil
}

// status renders the prompt prefix: the logged-in email, or "guest".
func (a *App) status(ctx context.Context) func() string {
	return func() string {
		u, err := a.authService.CurrentUser(ctx)
		if err != nil || u == nil {
			return "guest"
		}
		return u.Email
	}
}
