package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the API (default from Config)
//	-f string   session database path (default from Config)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "f")

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session database path")

	return fs.Parse(args)
}
