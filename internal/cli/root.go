// Package cli implements the ensemble command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/okian/ensemble/internal/config"
	"github.com/okian/ensemble/pkg/logger"
)

// All linker flags will be set by release infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all commands.
var rootCtx = context.Background()

// cfg holds the layered configuration shared by commands.
var cfg *config.Config

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Outfit recommendation engine",
	Long: `ensemble scores and assembles coherent multi-item outfits from a
product catalog in response to a structured shopping intent.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.Init(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(rootCtx)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		if err := logger.SetLevelString(level); err != nil {
			logger.Get().Warn(rootCtx, "invalid log level; falling back to info",
				logger.String("log_level", level), logger.Error(err))
			_ = logger.SetLevelString("info")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log verbosity: debug, info, warn, error")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(genCatalogCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
