package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/careermap/internal/config"
	"github.com/nao1215/careermap/internal/crawler"
	cmlog "github.com/nao1215/careermap/internal/log"
	"github.com/nao1215/careermap/internal/pipeline"
	"github.com/nao1215/careermap/internal/progress"
)

// loadConfig builds the configuration shared by all commands:
// defaults, then the config file, then .env and CAREERMAP_* variables,
// then the global flags. Command flags are applied by each command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ConfigFilePath = stringFlag(cmd, "config")

	// An explicit --config must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, err
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.Verbose = boolFlag(cmd, "verbose")
	cfg.JSONLog = boolFlag(cmd, "log-json")
	cfg.NoProgress = boolFlag(cmd, "no-progress")

	return cfg, nil
}

// boolFlag returns the value of a local or inherited bool flag.
// An undefined flag reads as false.
func boolFlag(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Lookup(name) == nil {
		return false
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// stringFlag returns the value of a local or inherited string flag.
// An undefined flag reads as "".
func stringFlag(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// setupLogger creates the redacting logger for cfg and makes it the default.
func setupLogger(cfg *config.Config) *slog.Logger {
	var logger *slog.Logger
	if cfg.JSONLog {
		logger = cmlog.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	} else {
		logger = cmlog.NewSecureLogger(os.Stderr, cfg.Verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// newPacer returns a token bucket when a rate is configured, otherwise
// the fixed delay.
func newPacer(cfg *config.Config) crawler.Pacer {
	if cfg.RateLimit > 0 {
		return crawler.NewRateLimit(cfg.RateLimit)
	}
	return crawler.NewFixedDelay(cfg.Delay)
}

// newProgress returns a spinner unless progress is disabled or debug logs
// would interleave with it.
func newProgress(cfg *config.Config, label string) pipeline.Progress {
	if cfg.NoProgress || cfg.Verbose || cfg.JSONLog {
		return pipeline.NopProgress{}
	}
	return progress.New(os.Stderr, label)
}

// signalContext cancels on SIGINT or SIGTERM so that a running crawl
// stops and still exports what it has.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// applyPacingFlags overrides the pacing settings given on the command line.
func applyPacingFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cmd.Flags().Changed("delay") {
		if cfg.Delay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("rate") {
		if cfg.RateLimit, err = cmd.Flags().GetFloat64("rate"); err != nil {
			return err
		}
	}
	return nil
}

// addPacingFlags registers --delay and --rate.
func addPacingFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Pause after each category request")
	cmd.Flags().Float64("rate", 0,
		"Pace requests at this many requests per second instead of --delay")
}
