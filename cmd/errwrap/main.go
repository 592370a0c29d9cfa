package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/errwrap/internal/app"
	"codeberg.org/mutker/errwrap/internal/config"
	"codeberg.org/mutker/errwrap/internal/errors"
	"codeberg.org/mutker/errwrap/internal/history"
	"codeberg.org/mutker/errwrap/internal/logger"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	errFactory := errors.New()

	cfg, err := config.Load(config.WithArgs(args))
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", errFactory.Wrap(errors.ErrInitApp, err))
		return exitUsage
	}

	if err := logger.InitWithWriter(stderr, cfg.GetLogLevel(), logger.IsService()); err != nil {
		fmt.Fprintf(stderr, "%v\n", errFactory.Wrap(errors.ErrInitApp, err))
		return exitUsage
	}
	logger.Debug().Msg("Config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder, err := history.NewService(historyConfig(cfg, cfg.ShowHistory > 0), logger.Default())
	if err != nil {
		logError(errFactory.Wrap(errors.ErrInitApp, err), "init_history")
		return exitFailure
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logError(errFactory.Wrap(errors.ErrShutdownFailed, err), "close_history")
		}
	}()

	if !cfg.IsHistoryEnabled() {
		recorder = readOnly{recorder}
	}

	if err := app.New(cfg, recorder, stdout).Run(ctx); err != nil {
		logError(err, "run")
		if errors.HasCode(err, errors.ErrNoInput) {
			fmt.Fprintln(stderr, "usage: errwrap [--code N]... [--error MSG]... [VALUE]...")
			return exitUsage
		}
		return exitFailure
	}

	return exitOK
}

// historyConfig opens the journal when recording is on. Reading alone
// opens it only if the database file already exists, so --show-history
// never creates one.
func historyConfig(p config.Provider, read bool) history.Config {
	cfg := history.DefaultConfig()
	cfg.DBPath = p.GetHistoryDBPath()
	cfg.Enabled = p.IsHistoryEnabled()

	if !cfg.Enabled && read {
		if _, err := os.Stat(cfg.DBPath); err == nil {
			cfg.Enabled = true
		}
	}

	return cfg
}

func logError(err error, operation string) {
	var appErr errors.Error
	if errors.As(err, &appErr) {
		logger.ErrorWithContext(appErr, "main", operation).Msg("")
		return
	}
	logger.Error().Err(err).Str("operation", operation).Msg("")
}

// readOnly lets --show-history open the journal without adding to it
type readOnly struct {
	history.Recorder
}

func (readOnly) Record(_ context.Context, _ *history.Entry) error {
	return nil
}
