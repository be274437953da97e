package cmd

import (
	"EnvKit/internal/dotenv"
	"EnvKit/internal/format"
	"EnvKit/internal/version"
	"fmt"
	"slices"
	"strings"
)

// ParseError wraps argument parsing errors to provide rich output
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--set")
}

func (e *ParseError) Error() string {
	indent := "   "

	var cmdLineParts []string
	cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName))

	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}

	// 'envkit previous parts failing_part'
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	// Message might contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}
	replacer := strings.NewReplacer(
		"%c", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", e.FailingCommand),
		"%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt),
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(strings.TrimRight(GetUsage(e.FailingCommand), "\n"), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup represents a parsed group of flags and a command with its arguments.
// Flags holds the modifier tokens as given, including the values of -f and -q.
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// CommandSlice returns the command and its arguments as a slice
func (cg CommandGroup) CommandSlice() []string {
	var s []string
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// Modifiers that take a value
var valueModifiers = map[string]bool{
	"-f": true, "--file": true,
	"-q": true, "--quote": true,
	"--encoding": true,
}

// Modifiers without a value
var boolModifiers = map[string]bool{
	"-e": true, "--export": true,
	"-o": true, "--override": true, "--no-override": true,
	"-n": true, "--no-interpolate": true,
	"-d": true, "--diff": true,
	"-v": true, "--verbose": true,
	"-x": true, "--debug": true,
}

// isFlagToken reports whether s starts a new flag or command.
// A lone "-" is an argument meaning standard input.
func isFlagToken(s string) bool {
	return strings.HasPrefix(s, "-") && s != "-"
}

// Parse parses the raw command line arguments into groups of command operations.
//
// Modifiers apply to the command that follows them. Each command consumes
// its own arguments; --run consumes everything after it.
func Parse(args []string) ([]CommandGroup, error) {
	InitFlags()
	args = slices.Clone(args)

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string

	i := 0
	for i < len(args) {
		arg := args[i]

		if !isFlagToken(arg) {
			return nil, &ParseError{Args: args, Index: i, Message: "Invalid option %o", FailingCommand: lastCommand}
		}

		// Expand combined short flags (e.g. -vl -> -v -l) in place, so values
		// already consumed by earlier commands are never split
		if !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			var expanded []string
			for _, c := range arg[1:] {
				expanded = append(expanded, "-"+string(c))
			}
			args = slices.Replace(args, i, i+1, expanded...)
			continue
		}

		// Split --name=value into two tokens
		if strings.HasPrefix(arg, "--") {
			if name, value, ok := strings.Cut(arg, "="); ok {
				args = slices.Replace(args, i, i+1, name, value)
				arg = name
			}
		}

		if lookupFlag(arg) == nil {
			return nil, &ParseError{Args: args, Index: i, Message: "Invalid option %o"}
		}

		if valueModifiers[arg] {
			if i+1 >= len(args) || isFlagToken(args[i+1]) {
				return nil, &ParseError{Args: args, Index: i, FailingCommand: arg, Message: "Flag %c requires an argument."}
			}
			if arg == "-q" || arg == "--quote" {
				if _, err := dotenv.ParseQuoteMode(args[i+1]); err != nil {
					return nil, &ParseError{Args: args, Index: i + 1, FailingCommand: arg, Message: "Invalid option %o"}
				}
			}
			currentGroup.Flags = append(currentGroup.Flags, arg, args[i+1])
			lastCommand = arg
			i += 2
			continue
		}
		if boolModifiers[arg] {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			lastCommand = arg
			i++
			continue
		}

		// Anything else that is a known flag is a command
		currentGroup.Command = arg
		lastCommand = arg
		cmd := arg
		i++

		requireArg := func() error {
			if i >= len(args) || isFlagToken(args[i]) {
				return &ParseError{Args: args, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			return nil
		}
		consumeUntilDash := func() {
			for i < len(args) && !isFlagToken(args[i]) {
				currentGroup.Args = append(currentGroup.Args, args[i])
				i++
			}
		}

		switch cmd {
		// Commands that take one or more arguments (until next flag)
		case "-g", "--get", "-u", "--unset", "-c", "--chain":
			if err := requireArg(); err != nil {
				return nil, err
			}
			consumeUntilDash()

		// Commands that take any number of arguments (until next flag)
		case "-w", "--watch":
			consumeUntilDash()

		// A key and a value; the value is taken as is, even when it starts with a dash
		case "-s", "--set":
			if err := requireArg(); err != nil {
				return nil, err
			}
			if i+1 >= len(args) {
				return nil, &ParseError{Args: args, Index: i, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires a key and a value.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, args[i], args[i+1])
			i += 2

		// Everything that follows is the command to run
		case "-r", "--run":
			if i >= len(args) {
				return nil, &ParseError{Args: args, Index: i - 1, FailingCommand: cmd, Message: fmt.Sprintf("Command %s requires an argument.", cmd)}
			}
			currentGroup.Args = append(currentGroup.Args, args[i:]...)
			i = len(args)

		// Commands that accept an optional output format
		case "-l", "--list":
			if i < len(args) && !isFlagToken(args[i]) {
				if !format.IsValid(args[i]) {
					return nil, &ParseError{Args: args, Index: i, FailingCommand: cmd, Message: "Invalid option %o"}
				}
				currentGroup.Args = append(currentGroup.Args, args[i])
				i++
			}

		// Commands that accept an optional name
		case "--find":
			if i < len(args) && !isFlagToken(args[i]) {
				currentGroup.Args = append(currentGroup.Args, args[i])
				i++
			}

		// Help allows an optional flag or command to describe
		case "-h", "--help":
			if i < len(args) && strings.HasPrefix(args[i], "-") {
				currentGroup.Args = append(currentGroup.Args, args[i])
				i++
			}

		// Commands that take no arguments
		case "-V", "--version", "--config-show", "--show-config":
		}

		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	// Trailing modifiers without a command form their own group
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}
