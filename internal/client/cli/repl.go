package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	User(ctx context.Context) error
	Admin(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the AuthKeeper CLI.
//
// It reads a line from reader, takes the first token as the command and
// dispatches to a. The loop exits on EOF, on "exit"/"quit", or when ctx is
// cancelled.
//
// Commands:
//
//	help            show available commands
//	register        create an account
//	login           authenticate and store the token locally
//	user            call the user route
//	admin           call the admin route
//	whoami          show the stored user
//	logout          forget the stored token
//	exit | quit     leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "ak [%s]> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help", "?":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, "Available commands: user, admin, whoami, logout, login, register, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, user, admin, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "user":
			_ = a.User(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
