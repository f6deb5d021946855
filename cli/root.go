package cli

import (
	"context"

	"github.com/gear6io/lendq/server/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type (
	loggerKey struct{}
	configKey struct{}
)

var rootCmd = &cobra.Command{
	Use:   "lendq",
	Short: "Encode, decode and inspect lendq protocol messages",
	Long: `lendq works with the binary protocol spoken between lendq clients and
the queue engine: requests, replies and protocol errors.

Messages are written as YAML documents and printed as hex, or decoded from
hex back into YAML or JSON.`,
	Version:       "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareContext,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteWithContext runs the root command with a context carrying the logger
func ExecuteWithContext(ctx context.Context) error {
	rootCmd.SetContext(ctx)

	if logger := getLoggerFromContext(ctx); logger != nil {
		logger.Debug().Str("cmd", "root").Msg("Executing root command")
	}

	return rootCmd.Execute()
}

// WithLogger returns a context that carries logger for the commands.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// getLoggerFromContext retrieves the logger from context
func getLoggerFromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return nil
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return &logger
	}
	return nil
}

// WithConfig returns a context that carries cfg for the commands.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// commandConfig returns the context config, or the defaults.
func commandConfig(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.LoadDefaultConfig()
}

// prepareContext applies --config and --verbose before any subcommand runs.
func prepareContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		ctx = WithConfig(ctx, cfg)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if logger := getLoggerFromContext(ctx); logger != nil {
			ctx = WithLogger(ctx, logger.Level(zerolog.DebugLevel))
		}
	}

	cmd.SetContext(ctx)
	return nil
}

// commandLogger returns the context logger, or a disabled one.
func commandLogger(cmd *cobra.Command) zerolog.Logger {
	if logger := getLoggerFromContext(cmd.Context()); logger != nil {
		return *logger
	}
	return zerolog.Nop()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default lendq.yml)")
}
