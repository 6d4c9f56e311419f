// Package flagx lets several independent flag sets share one command line.
//
// Server and client configuration are assembled from layers (JSON file,
// flags), each parsed by its own flag.FlagSet. flag.FlagSet.Parse fails on
// flags it does not know, so every layer first narrows the command line to
// the flags it owns.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps only the flags listed in names, together with their values.
// Names are given without leading dashes; both "-name" and "--name" spellings
// match, as do "-name value" and "-name=value" forms.
func FilterArgs(args []string, names ...string) []string {
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[strings.TrimLeft(n, "-")] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := known[name]; !ok {
			continue
		}

		out = append(out, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFilePath returns the value of -c / -config from args, or "" if
// neither is present. The last occurrence wins.
func ConfigFilePath(args []string) string {
	var path string
	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))
	return path
}
