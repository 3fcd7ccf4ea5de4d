package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"example.com/edunotes/internal/config"
	"example.com/edunotes/internal/logging"
)

type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "edunotes",
		Short: "Study notes REST API",
		Long: `EduNotes stores study notes grouped by subject and serves them over a
JSON API with filtering, paging and per-subject statistics.

Running without a subcommand starts the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCmd(a), newMigrateCmd(a))
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return nil
}
