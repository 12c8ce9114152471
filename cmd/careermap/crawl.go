package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/careermap/internal/config"
	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/database"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/pipeline"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <theme|industry>",
		Short: "Map every category to the job ids on its detail page",
		Long: `Crawl reads the categories of the given mode from the career advice
listing page, visits each category page in order and collects the job ids
of its role cards.

The mapping is written to <output-dir>/themes.json or
<output-dir>/industries.json. When a request fails the crawl stops, but the
categories collected so far are still written and the run is recorded as
failed. The same happens on Ctrl-C.

Examples:
  # Map themes to job ids
  careermap crawl theme

  # Map industries with a shorter pause and indented output
  careermap crawl industry --delay 2s --pretty

  # Pace with a token bucket of one request every two seconds
  careermap crawl theme --rate 0.5

  # Fail when the listing page has no category at all
  careermap crawl theme --strict`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().String("root-url", config.DefaultRootURL,
		"Listing page the categories are read from")
	cmd.Flags().String("base-origin", config.DefaultBaseOrigin,
		"Origin joined to relative category links")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the mapping is written to")
	addPacingFlags(cmd)
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout of each page request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent to the site")
	cmd.Flags().Bool("strict", false,
		"Fail when the listing page has no category card")
	cmd.Flags().Bool("pretty", false,
		"Indent the exported JSON")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record the run in the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCrawlFlags(cmd, cfg); err != nil {
		return err
	}

	mode, err := model.ParseMode(args[0])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)

	ctx, stop := signalContext(cmd)
	defer stop()

	opts := []pipeline.CrawlOption{
		pipeline.WithExtractor(newExtractor(cfg)),
		pipeline.WithPacer(newPacer(cfg)),
		pipeline.WithOutputDir(cfg.OutputDir),
		pipeline.WithPrettyJSON(cfg.PrettyJSON),
		pipeline.WithProgress(newProgress(cfg, mode.OutputName())),
		pipeline.WithCrawlLogger(logger),
	}

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Debug("history database opened", "path", db.Path())
		opts = append(opts, pipeline.WithRecorder(db))
	}

	runner := pipeline.NewCrawlRunner(newFetcher(cfg, logger), opts...)
	crawlReport, err := runner.Run(ctx, cfg.RootURL, mode)
	if crawlReport != nil {
		printCrawlResult(cmd.OutOrStdout(), crawlReport)
	}
	return err
}

// applyCrawlFlags overrides cfg with the crawl flags given on the command line.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("root-url") {
		if cfg.RootURL, err = flags.GetString("root-url"); err != nil {
			return err
		}
	}
	if flags.Changed("base-origin") {
		if cfg.BaseOrigin, err = flags.GetString("base-origin"); err != nil {
			return err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if flags.Changed("strict") {
		if cfg.Strict, err = flags.GetBool("strict"); err != nil {
			return err
		}
	}
	if flags.Changed("pretty") {
		if cfg.PrettyJSON, err = flags.GetBool("pretty"); err != nil {
			return err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return err
	}
	if noHistory {
		cfg.SaveToDB = false
	}

	return applyPacingFlags(cmd, cfg)
}

// newFetcher creates the page fetcher for cfg.
func newFetcher(cfg *config.Config, logger *slog.Logger) *crawler.HTTPFetcher {
	return crawler.NewHTTPFetcher(
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithFetcherLogger(logger),
	)
}

// newExtractor creates the extractor for cfg. --strict turns an empty
// category container into an error.
func newExtractor(cfg *config.Config) *crawler.Extractor {
	categoryPolicy := crawler.AllowEmpty
	if cfg.Strict {
		categoryPolicy = crawler.RequireMatch
	}
	return crawler.NewExtractor(
		crawler.WithBaseOrigin(cfg.BaseOrigin),
		crawler.WithCategoryPolicy(categoryPolicy),
	)
}

// printCrawlResult prints a one-line outcome of the crawl.
func printCrawlResult(w io.Writer, r *model.CrawlReport) {
	if r.OutputPath == "" {
		fmt.Fprintf(w, "Crawl %s: nothing written (%s)\n", r.Status, r.Duration().Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "Crawl %s: %d categories, %d job ids written to %s (%s)\n",
		r.Status, r.Mapping.Len(), r.JobCount(), r.OutputPath, r.Duration().Round(time.Millisecond))
}
