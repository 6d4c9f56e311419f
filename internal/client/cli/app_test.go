package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

func startServer(t *testing.T) string {
	t.Helper()
	tokens := auth.NewTokenService("cli-test", time.Hour)
	us := services.NewUserService(nil, repomanager.NewInMemoryRepositoryManager(), auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	api := httpapi.NewHTTPServer("", logging.Nop(), us, auth.NewGate(tokens), httpapi.Options{})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func newTestApp(t *testing.T, serverURL, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		ServerURL:      serverURL,
		SessionFile:    filepath.Join(t.TempDir(), "session.db"),
		RequestTimeout: 5 * time.Second,
	}
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	app.reader = rdr(input)
	app.out = &out
	return app, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func TestNewApp_InvalidServerURL(t *testing.T) {
	_, err := NewApp(context.Background(), &config.Config{ServerURL: "nope", SessionFile: filepath.Join(t.TempDir(), "s.db")})
	require.Error(t, err)
}

func TestApp_EndToEnd(t *testing.T) {
	stubPassword(t, "pw")
	url := startServer(t)

	app, out := newTestApp(t, url, "register\nA\na@x.com\n\n"+
		"login\na@x.com\n"+
		"whoami\nuser\nadmin\n"+
		"logout\nuser\nexit\n")

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Registration successful: a@x.com")
	assert.Contains(t, got, "role user")
	assert.Contains(t, got, "Login success: a@x.com, role user")
	assert.Contains(t, got, "A <a@x.com>")
	assert.Contains(t, got, "User Route Accessed")
	assert.Contains(t, got, "Admin route: access denied for your role")
	assert.Contains(t, got, "Logged out")
	assert.Contains(t, got, "User route: not logged in")
	assert.Contains(t, got, "ak [a@x.com]> ")
}

func TestApp_AdminAndDuplicate(t *testing.T) {
	stubPassword(t, "pw")
	url := startServer(t)

	app, out := newTestApp(t, url, "register\nB\nb@x.com\nadmin\n"+
		"register\nB2\nb@x.com\n\n"+
		"login\nb@x.com\nadmin\nquit\n")

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Registration failed: Email already used")
	assert.Contains(t, got, "Admin Route Accessed")
}

func TestApp_WrongPassword(t *testing.T) {
	url := startServer(t)

	stubPassword(t, "pw")
	app, _ := newTestApp(t, url, "register\nC\nc@x.com\n\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	stubPassword(t, "bad")
	app, out := newTestApp(t, url, "login\nc@x.com\nwhoami\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Login failed: Invalid email or password")
	assert.Contains(t, got, "Not logged in")
}

func TestApp_ServerDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	app, out := newTestApp(t, url, "whoami\nexit\n")
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "is not reachable")
}
