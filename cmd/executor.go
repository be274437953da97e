package cmd

import (
	"EnvKit/internal/config"
	"EnvKit/internal/console"
	"EnvKit/internal/constants"
	"EnvKit/internal/dotenv"
	"EnvKit/internal/envdiff"
	"EnvKit/internal/exec"
	"EnvKit/internal/format"
	"EnvKit/internal/logger"
	"EnvKit/internal/version"
	"EnvKit/internal/watch"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stdout receives command output; logs go to stderr.
var stdout io.Writer = os.Stdout

// errReported marks a failure that has already been logged.
var errReported = errors.New("command failed")

// CmdState holds the state of flags for a single command group.
type CmdState struct {
	File        string
	Quote       dotenv.QuoteMode
	Encoding    string
	Export      bool
	Override    bool
	Interpolate bool
	Diff        bool
	Format      string
}

// newState returns the state for a command group, starting from the config defaults.
func newState(conf config.AppConfig, flags []string) CmdState {
	state := CmdState{
		File:        conf.Env.File,
		Quote:       dotenv.QuoteMode(conf.Env.QuoteMode),
		Encoding:    conf.Env.Encoding,
		Export:      conf.Env.Export,
		Override:    conf.Env.Override,
		Interpolate: conf.Env.Interpolate,
		Format:      conf.Output.Format,
	}

	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case "-f", "--file":
			i++
			state.File = flags[i]
		case "-q", "--quote":
			i++
			state.Quote = dotenv.QuoteMode(flags[i])
		case "--encoding":
			i++
			state.Encoding = flags[i]
		case "-e", "--export":
			state.Export = true
		case "-o", "--override":
			state.Override = true
		case "--no-override":
			state.Override = false
		case "-n", "--no-interpolate":
			state.Interpolate = false
		case "-d", "--diff":
			state.Diff = true
		case "-v", "--verbose":
			logger.SetLevel(logger.LevelInfo)
		case "-x", "--debug":
			logger.SetLevel(logger.LevelDebug)
		}
	}
	return state
}

// readOptions returns the dotenv options for reading env files.
func (s CmdState) readOptions() []dotenv.Option {
	return []dotenv.Option{
		dotenv.WithInterpolate(s.Interpolate),
		dotenv.WithOverride(s.Override),
		dotenv.WithEncoding(s.Encoding),
	}
}

// Execute runs the logic for a sequence of command groups.
// It handles flag application, command switching, and state resetting.
// The returned value is the process exit code.
func Execute(ctx context.Context, groups []CommandGroup) int {
	if len(groups) == 0 {
		PrintHelp(stdout, "")
		return 0
	}

	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Error(ctx, "Failed to load configuration: %v", err)
		return 1
	}
	if level, err := logger.ParseLevel(conf.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	baseLevel := logger.LevelVar.Level()

	for _, group := range groups {
		state := newState(conf, group.Flags)

		cmdStr := version.CommandName
		for _, part := range group.FullSlice() {
			cmdStr += " " + part
		}
		logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, cmdStr)
		logger.Debug(ctx, "Execution Args -> State: %+v, Command: %v", state, group.CommandSlice())

		var err error
		code := 0
		switch group.Command {
		case "-h", "--help":
			handleHelp(&group)
		case "-V", "--version":
			handleVersion()
		case "", "-l", "--list":
			err = handleList(ctx, &group, &state)
		case "-g", "--get":
			err = handleGet(ctx, &group, &state)
		case "-s", "--set":
			err = handleSet(ctx, &group, &state)
		case "-u", "--unset":
			err = handleUnset(ctx, &group, &state)
		case "-c", "--chain":
			err = handleChain(ctx, &group, &state)
		case "-w", "--watch":
			err = handleWatch(ctx, &group, &state)
		case "--find":
			err = handleFind(ctx, &group, &state)
		case "-r", "--run":
			code, err = handleRun(ctx, &group, &state)
		case "--config-show", "--show-config":
			handleConfigShow(ctx, &conf)
		default:
			logger.Error(ctx, "The '{{_UserCommand_}}%s{{|-|}}' command is not implemented.", group.Command)
			err = errReported
		}

		// Reset Flags
		logger.SetLevel(baseLevel)

		if err != nil {
			if !errors.Is(err, errReported) {
				logger.Error(ctx, "%v", err)
			}
			return 1
		}
		if code != 0 {
			return code
		}
	}

	return 0
}

func handleHelp(group *CommandGroup) {
	target := ""
	if len(group.Args) > 0 {
		target = group.Args[0]
	}
	PrintHelp(stdout, target)
}

func handleVersion() {
	fmt.Fprintln(stdout, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version)))
	fmt.Fprintf(stdout, "Commit: %s\nBuilt:  %s\n", version.Commit, version.BuildDate)
}

func handleList(ctx context.Context, group *CommandGroup, state *CmdState) error {
	outFormat := state.Format
	if len(group.Args) > 0 {
		outFormat = group.Args[0]
	}

	if err := requireFile(ctx, state.File); err != nil {
		return err
	}
	vals, err := dotenv.Read(ctx, state.File, state.readOptions()...)
	if err != nil {
		return err
	}
	return format.Write(stdout, outFormat, vals)
}

func handleGet(ctx context.Context, group *CommandGroup, state *CmdState) error {
	missing := false
	for _, key := range group.Args {
		value, ok, err := dotenv.GetKey(ctx, state.File, key, state.readOptions()...)
		if err != nil {
			return err
		}
		if !ok {
			missing = true
			continue
		}
		if value != nil {
			fmt.Fprintln(stdout, *value)
		} else {
			fmt.Fprintln(stdout)
		}
	}
	if missing {
		return errReported
	}
	return nil
}

// withDiff runs fn and, when requested, logs how it changed path.
func withDiff(ctx context.Context, state *CmdState, fn func() error) error {
	if !state.Diff {
		return fn()
	}

	before, err := os.ReadFile(state.File)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	after, err := os.ReadFile(state.File)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	diff := envdiff.Lines(string(before), string(after))
	if diff == "" {
		logger.Notice(ctx, "No changes to '{{_File_}}%s{{|-|}}'.", state.File)
		return nil
	}
	logger.Notice(ctx, "Changes to '{{_File_}}%s{{|-|}}':\n%s", state.File, diff[:len(diff)-1])
	return nil
}

func handleSet(ctx context.Context, group *CommandGroup, state *CmdState) error {
	key, value := group.Args[0], group.Args[1]
	return withDiff(ctx, state, func() error {
		res, err := dotenv.SetKey(ctx, state.File, key, value, state.Quote, state.Export)
		if err != nil {
			return err
		}
		if !res.OK {
			return errReported
		}
		return nil
	})
}

func handleUnset(ctx context.Context, group *CommandGroup, state *CmdState) error {
	return withDiff(ctx, state, func() error {
		failed := false
		for _, key := range group.Args {
			res, err := dotenv.UnsetKey(ctx, state.File, key, state.Quote)
			if err != nil {
				return err
			}
			if !res.OK {
				failed = true
			}
		}
		if failed {
			return errReported
		}
		return nil
	})
}

func chainSources(files []string) []dotenv.Source {
	sources := make([]dotenv.Source, 0, len(files))
	for _, f := range files {
		if f == "-" {
			sources = append(sources, dotenv.FromReader(os.Stdin))
			continue
		}
		sources = append(sources, dotenv.FromPath(f))
	}
	return sources
}

func chainOptions(state *CmdState) []dotenv.Option {
	return []dotenv.Option{
		dotenv.WithInterpolate(state.Interpolate),
		dotenv.WithEncoding(state.Encoding),
	}
}

func handleChain(ctx context.Context, group *CommandGroup, state *CmdState) error {
	vals, err := dotenv.ChainedValues(ctx, chainSources(group.Args), chainOptions(state)...)
	if err != nil {
		return err
	}
	return format.Write(stdout, state.Format, vals)
}

func handleWatch(ctx context.Context, group *CommandGroup, state *CmdState) error {
	files := group.Args
	if len(files) == 0 {
		files = []string{state.File}
	}
	for _, f := range files {
		if f == "-" {
			logger.Error(ctx, "Standard input can't be watched.")
			return errReported
		}
	}

	show := func(ctx context.Context) error {
		vals, err := dotenv.ChainedValues(ctx, chainSources(files), chainOptions(state)...)
		if err != nil {
			return err
		}
		return format.Write(stdout, state.Format, vals)
	}

	if err := show(ctx); err != nil {
		return err
	}
	logger.Notice(ctx, "Watching for changes. Press {{_UserCommand_}}Ctrl+C{{|-|}} to stop.")
	return watch.Files(ctx, files, watch.DefaultDebounce, show)
}

func handleFind(ctx context.Context, group *CommandGroup, state *CmdState) error {
	name := filepath.Base(state.File)
	if len(group.Args) > 0 {
		name = group.Args[0]
	}
	if name == "" || name == "." {
		name = constants.EnvFileName
	}

	path, err := dotenv.FindDotenv("", name)
	if errors.Is(err, dotenv.ErrNotFound) {
		logger.Warn(ctx, "No '{{_File_}}%s{{|-|}}' found in the current directory or its parents.", name)
		return errReported
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

// requireFile fails when path is not an existing file.
func requireFile(ctx context.Context, path string) error {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		logger.Error(ctx, "Invalid value for '{{_UserCommand_}}-f{{|-|}}': '{{_File_}}%s{{|-|}}' does not exist.", path)
		return errReported
	}
	return nil
}

func handleRun(ctx context.Context, group *CommandGroup, state *CmdState) (int, error) {
	if err := requireFile(ctx, state.File); err != nil {
		return 1, err
	}

	vals, err := dotenv.Read(ctx, state.File, state.readOptions()...)
	if err != nil {
		return 1, err
	}
	env := exec.MergeEnv(os.Environ(), vals, state.Override)
	return exec.Run(ctx, env, group.Args[0], group.Args[1:]...)
}

func handleConfigShow(ctx context.Context, conf *config.AppConfig) {
	logger.Info(ctx, "Configuration options stored in '{{_File_}}%s{{|-|}}':", conf.Path)
	fmt.Fprint(stdout, conf.String())
	fmt.Fprintf(stdout, "\n# log file: %s\n", conf.LogFile)
}
