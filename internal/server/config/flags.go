package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN, or "memory"
//	-s string     JWT HMAC secret key
//	-t duration   access token validity (e.g., "24h")
//	-k int        bcrypt cost
//
// Only the flags above are taken from args; others (such as -c) belong to
// other layers and are ignored.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "d", "s", "t", "k")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity duration")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")

	return fs.Parse(args)
}
