package exec

import (
	"EnvKit/internal/dotenv"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// ErrNoCommand is returned by Run when no command was given.
var ErrNoCommand = errors.New("no command given")

// MergeEnv layers vals over base, a list of KEY=VALUE entries as returned by os.Environ.
//
// Unset values are skipped. Keys already in base are replaced only when
// override is true. The result keeps base order and appends new keys in
// vals order.
func MergeEnv(base []string, vals *dotenv.Values, override bool) []string {
	env := slices.Clone(base)
	index := make(map[string]int, len(env))
	for i, kv := range env {
		k, _, _ := strings.Cut(kv, "=")
		index[k] = i
	}

	for k, v := range vals.All() {
		if v == nil {
			continue
		}
		if i, ok := index[k]; ok {
			if override {
				env[i] = k + "=" + *v
			}
			continue
		}
		index[k] = len(env)
		env = append(env, k+"="+*v)
	}
	return env
}

// Run executes command with env as its complete environment.
// Standard input, output and error are attached to the current process.
//
// The child's exit code is returned; a non-zero code is not an error.
// Errors are reserved for commands that could not be started.
func Run(ctx context.Context, env []string, command string, args ...string) (int, error) {
	if command == "" {
		return 1, ErrNoCommand
	}

	cmdText := command
	if len(args) > 0 {
		cmdText = fmt.Sprintf("%s %s", command, strings.Join(args, " "))
	}
	logByType(ctx, "info", "Running: {{_RunningCommand_}}%s{{|-|}}", cmdText)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logByType(ctx, "debug", "Command {{_FailingCommand_}}%s{{|-|}} exited with code %d", cmdText, code)
		if code < 0 {
			// Killed by a signal
			code = 1
		}
		return code, nil
	}

	logByType(ctx, "error", "Failing command: {{_FailingCommand_}}%s{{|-|}}", cmdText)
	return 1, fmt.Errorf("command failed: %w", err)
}
