package cmd

import (
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

var (
	flagSet     *pflag.FlagSet
	initFlagSet sync.Once
)

// InitFlags defines the pflags used for argument validation and help.
// It is safe to call more than once.
func InitFlags() *pflag.FlagSet {
	initFlagSet.Do(func() {
		fs := pflag.NewFlagSet("envkit", pflag.ContinueOnError)

		// Modifiers
		fs.StringP("file", "f", "", "Env file to operate on")
		fs.StringP("quote", "q", "", "Quote mode for written values (always, auto, never)")
		fs.String("encoding", "", "Encoding of the env file")
		fs.BoolP("export", "e", false, "Prefix written lines with export")
		fs.BoolP("override", "o", false, "Let file values override the environment")
		fs.Bool("no-override", false, "Keep existing environment values")
		fs.BoolP("no-interpolate", "n", false, "Do not expand ${VAR} references")
		fs.BoolP("diff", "d", false, "Show the changes made to the file")
		fs.BoolP("verbose", "v", false, "Verbose output")
		fs.BoolP("debug", "x", false, "Debug output")

		// Commands
		fs.StringP("list", "l", "", "Print all values")
		fs.StringP("get", "g", "", "Print the value of keys")
		fs.StringP("set", "s", "", "Set a key to a value")
		fs.StringP("unset", "u", "", "Remove keys")
		fs.StringP("run", "r", "", "Run a command with the values loaded")
		fs.StringP("chain", "c", "", "Merge several env files and print the result")
		fs.StringP("watch", "w", "", "Print values again whenever the files change")
		fs.String("find", "", "Search parent directories for an env file")
		fs.Bool("config-show", false, "Show configuration")
		fs.Bool("show-config", false, "Show configuration (alias)")
		fs.BoolP("help", "h", false, "Show help")
		fs.BoolP("version", "V", false, "Show version")

		flagSet = fs
	})
	return flagSet
}

// lookupFlag resolves "-x" or "--name" against the defined flags.
func lookupFlag(arg string) *pflag.Flag {
	fs := InitFlags()
	name, _, _ := strings.Cut(arg, "=")
	switch {
	case strings.HasPrefix(name, "--"):
		return fs.Lookup(name[2:])
	case len(name) == 2 && name[0] == '-':
		return fs.ShorthandLookup(name[1:])
	}
	return nil
}
