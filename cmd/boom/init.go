package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boom-router/boom/internal/config"
	"github.com/boom-router/boom/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		provider string
		path     string
		base     string
		record   bool
		metrics  bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a boom.json",
		Long: `Write a boom.json with default values into DIR (default: the
working directory). An existing file is kept unless --force is given.

Examples:
  boom init
  boom init --provider hash --base /app
  boom init --record --metrics ./tools`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.New("E108").WithDetail("Found " + filepath.Join(dir, config.ConfigFileName))
			}

			cfg := config.New()
			if provider != "" {
				cfg.Provider = provider
			}
			if path != "" {
				cfg.Path = path
			}
			cfg.Base = base
			cfg.Record = record
			cfg.Metrics.Enabled = metrics
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
				return err
			}
			info(cmd.OutOrStdout(), "wrote %s", cfg.File())
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", `Provider: "memory" or "hash" (default "memory")`)
	cmd.Flags().StringVarP(&path, "path", "p", "", `Initial path (default "/")`)
	cmd.Flags().StringVarP(&base, "base", "b", "", "Router base path")
	cmd.Flags().BoolVarP(&record, "record", "r", false, "Keep a History Log")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Serve /metrics")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing boom.json")

	return cmd
}
