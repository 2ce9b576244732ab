package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yingtu35/email-scraper/internal/batch"
	"github.com/yingtu35/email-scraper/internal/config"
	"github.com/yingtu35/email-scraper/internal/export"
	"github.com/yingtu35/email-scraper/internal/logger"
	"github.com/yingtu35/email-scraper/internal/progress"
	"github.com/yingtu35/email-scraper/internal/records"
	"github.com/yingtu35/email-scraper/internal/webscraper"
)

func newRootCmd() *cobra.Command {
	var configFile, envFile string

	cmd := &cobra.Command{
		Use:   "email-scraper",
		Short: "Scrape publicly listed e-mail addresses from websites in a CSV.",
		Long: `Reads a CSV file, visits the homepage and a fixed list of common contact
subpages of every website in the chosen column, and writes the records back
out with a scraped_emails column holding the addresses found.`,
		Example:      "  email-scraper --input firms.csv --website-column website --output firms_emails.csv",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cmd.Flags(), configFile, envFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&configFile, "config", "", "Optional config file (yaml, json or toml)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional .env file with EMAIL_SCRAPER_* variables")
	return cmd
}

// run loads the records, crawls every website and writes the enriched file.
// Everything that can fail on configuration fails before the first request.
func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	log, err := logger.New(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	table, err := records.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	if _, err := table.ColumnIndex(cfg.WebsiteColumn); err != nil {
		return fmt.Errorf("%w in %s", err, cfg.Input)
	}
	exporter, err := export.New(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}

	hunter := webscraper.NewStaticEmailHunter(cfg.ScraperOptions(), log)
	runner := batch.NewRunner(hunter, reporterFor(stderr), log)

	start := time.Now()
	results, err := runner.Run(ctx, table, cfg.WebsiteColumn)
	if err != nil {
		return err
	}

	if err := exporter.Export(table, cfg.Output); err != nil {
		return err
	}
	if cfg.Summary != "" {
		if err := export.WriteSummary(batch.SummaryRows(results), cfg.Summary); err != nil {
			return err
		}
	}

	batch.PrintResults(stdout, results)
	log.Info("Total scraping time", "elapsed", time.Since(start).Round(time.Millisecond))

	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		output = cfg.Output
	}
	fmt.Fprintf(stdout, "✓ Done. Results saved to %s\n", output)
	return nil
}

// reporterFor draws a spinner only when w is a real file such as os.Stderr.
func reporterFor(w io.Writer) progress.Reporter {
	if f, ok := w.(*os.File); ok {
		return progress.NewSpinner(f)
	}
	return progress.Noop{}
}
