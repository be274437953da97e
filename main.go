package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"EnvKit/cmd"
	"EnvKit/internal/config"
	"EnvKit/internal/console"
	"EnvKit/internal/logger"
	"EnvKit/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	logFile := ""
	if conf, err := config.LoadAppConfig(); err == nil {
		logFile = conf.LogFile
	}
	slog.SetDefault(logger.NewLogger(logFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Defer cleanup to ensure it runs even if we return early or panic
	defer cleanup(ctx)

	// Recover from logger.FatalError to ensure cleanup runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				// This panic was intentional from logger.Fatal/FatalNoTrace
				exitCode = 1
			} else {
				// Re-panic for other errors
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} did not finish running successfully.", version.ApplicationName)))
		}
	}()
	defer logger.Recover(ctx)

	// Parse command line arguments
	groups, err := cmd.Parse(os.Args[1:])
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}

	// Hand off execution to the cmd package
	return cmd.Execute(ctx, groups)
}

func cleanup(ctx context.Context) {
	logger.Debug(ctx, "Cleaning up...")
	logger.Close()
}
