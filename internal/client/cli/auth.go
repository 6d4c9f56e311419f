package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and an optional role, and
// creates the account on the server.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	role, err := getSimpleText(a.reader, "Enter role (empty for user)", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, name, email, password, role)
	if err != nil {
		return a.report("Registration failed", err)
	}

	fmt.Fprintf(a.out, "Registration successful: %s (%s), role %s\n", u.Email, u.ID, u.Role)
	return nil
}

// Login prompts for credentials and stores the issued token locally.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report("Login failed", err)
	}

	fmt.Fprintf(a.out, "Login success: %s, role %s\n", u.Email, u.Role)
	return nil
}

// User calls the route available to any authenticated user.
func (a *App) User(ctx context.Context) error {
	res, err := a.authService.AccessUser(ctx)
	if err != nil {
		return a.report("User route", err)
	}
	a.printAccess(res)
	return nil
}

// Admin calls the admin-only route.
func (a *App) Admin(ctx context.Context) error {
	res, err := a.authService.AccessAdmin(ctx)
	if err != nil {
		return a.report("Admin route", err)
	}
	a.printAccess(res)
	return nil
}

// WhoAmI prints the locally stored user.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return a.report("Session", err)
	}
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s role=%s\n", u.Name, u.Email, u.ID, u.Role)
	return nil
}

// Logout forgets the local session. The token itself stays valid until it expires.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report("Logout failed", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) printAccess(res *models.AccessResult) {
	fmt.Fprintf(a.out, "%s: id=%s role=%s expires=%s\n",
		res.Message, res.User.ID, res.User.Role, time.Unix(res.User.Exp, 0).Format(time.RFC3339))
}

// report prints a user-facing explanation of err and returns it.
func (a *App) report(what string, err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintf(a.out, "%s: not logged in, use 'login' first\n", what)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintf(a.out, "%s: token rejected, please log in again\n", what)
	case errors.Is(err, client.ErrForbidden):
		fmt.Fprintf(a.out, "%s: access denied for your role\n", what)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable\n", what)
	case errors.As(err, &apiErr) && apiErr.Message != "":
		fmt.Fprintf(a.out, "%s: %s\n", what, apiErr.Message)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", what, err)
	}
	return err
}
