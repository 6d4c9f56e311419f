// Package client contains the AuthKeeper API client used by the CLI and the
// local SQLite session database bootstrap.
package client
