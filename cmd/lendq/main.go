package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gear6io/lendq/cli"
	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/config"
)

func main() {
	// Load configuration first, falling back to defaults
	cfg, loadErr := config.LoadConfig(config.DEFAULT_CONFIG_FILE)
	if loadErr != nil {
		cfg = config.LoadDefaultConfig()
		// Without a config file, log nothing to the console or disk.
		cfg.Log.Console = false
		cfg.Log.FilePath = ""
	}

	logger, err := config.SetupLoggerWithConsole(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	if loadErr != nil {
		logger.Debug().Err(loadErr).Msg("Using default configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = cli.WithLogger(ctx, logger)
	ctx = cli.WithConfig(ctx, cfg)

	if err := cli.ExecuteWithContext(ctx); err != nil {
		logger.Debug().Str("code", errors.GetCode(err)).Msg("Command failed")
		fmt.Fprintln(os.Stderr, "Error:", errors.FormatError(err))
		stop()
		os.Exit(1)
	}
}
