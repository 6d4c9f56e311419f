// Package cli provides the interactive AuthKeeper command-line client.
//
// It wires configuration, the local session database, the API client and a
// REPL. Typical flow: register, log in (the token is kept in the session
// database across runs), then call the protected user and admin routes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
