package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitment-crawler/internal/config"
	"fitment-crawler/internal/logs"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fitment",
		Short:         "Build the oil filter fitment catalog from yoro-store.com",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newScrapeCmd(), newImportCmd(), newMigrateCmd())
	return root
}

// setup loads .env and the environment into a Config and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	envErr := config.LoadEnvFile(".env")

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logs.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if envErr != nil {
		logger.Warn(".env file found but could not be loaded", zap.Error(envErr))
	}
	return cfg, logger, nil
}
