package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitment-crawler/internal/app"
)

func newImportCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a catalog JSON file into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if in == "" {
				in = cfg.OutputPath
			}
			count, err := app.Import(cmd.Context(), cfg, logger, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products imported from %s\n", count, in)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Catalog file (defaults to OUTPUT_PATH)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			_, closeDB, err := app.OpenStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			closeDB()
			logger.Info("migrations applied")
			return nil
		},
	}
}
