package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitment-crawler/internal/app"
	"fitment-crawler/internal/crawler/engine"
	"fitment-crawler/pkg/models"
)

func newScrapeCmd() *cobra.Command {
	var (
		part     string
		out      string
		doImport bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl the category listing and write the catalog JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if part != "" {
				category := models.ParsePartCategory(part)
				if category == models.UnknownPart {
					return fmt.Errorf("%w: unknown part %q", errUsage, part)
				}
				cfg.CategoryPath = category.CategoryPath()
			}
			if out != "" {
				cfg.OutputPath = out
			}

			var opts app.ScrapeOptions
			if doImport {
				store, closeDB, err := app.OpenStore(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
				defer closeDB()
				opts.Sinks = []engine.Sink[models.ProductRecord]{store}
			}

			records, _, err := app.Scrape(cmd.Context(), cfg, logger, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products written to %s\n", len(records), cfg.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&part, "part", "", "Part category, as a slug (oil-filter) or Japanese name (オイルフィルター)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to OUTPUT_PATH)")
	cmd.Flags().BoolVar(&doImport, "import", false, "Also load the catalog into Postgres (needs DB_URL)")
	return cmd
}
