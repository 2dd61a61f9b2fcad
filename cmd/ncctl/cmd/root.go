// Package cmd implements ncctl, an operator tool that runs the course folder and file
// publishing workflows against the configured Nextcloud server.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coursecloud/service/internal/config"
	"github.com/coursecloud/service/internal/logging"
	"github.com/coursecloud/service/internal/nextcloud"
	"github.com/coursecloud/service/internal/provision"
)

var (
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "ncctl",
	Short:         "Provision course folders and publish files on Nextcloud",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level=debug")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env bundles what the workflow commands need.
type env struct {
	cfg          *config.Config
	logger       *zap.Logger
	orchestrator *provision.Orchestrator
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := logLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Format: "console", File: cfg.Log.File})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client := nextcloud.NewClient(cfg.Credentials(),
		nextcloud.WithTimeout(cfg.Nextcloud.Timeout),
		nextcloud.WithLogger(logger.Named("nextcloud")),
	)
	return &env{
		cfg:          cfg,
		logger:       logger,
		orchestrator: provision.New(client, cfg.Nextcloud.RootFolder, logger.Named("provision")),
	}, nil
}
