package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/careermap/internal/config"
	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
)

// CrawlRunner builds and runs the crawl pipeline for one mode.
type CrawlRunner struct {
	fetcher   crawler.Fetcher
	extractor *crawler.Extractor
	pacer     crawler.Pacer
	outputDir string
	pretty    bool
	recorder  Recorder
	progress  Progress
	logger    *slog.Logger
}

// CrawlOption configures a CrawlRunner.
type CrawlOption func(*CrawlRunner)

// WithExtractor sets the extractor. The default uses the SEEK origin and policies.
func WithExtractor(e *crawler.Extractor) CrawlOption {
	return func(c *CrawlRunner) {
		c.extractor = e
	}
}

// WithPacer sets the pause between category requests.
func WithPacer(p crawler.Pacer) CrawlOption {
	return func(c *CrawlRunner) {
		c.pacer = p
	}
}

// WithOutputDir sets the directory the mapping is exported to.
func WithOutputDir(dir string) CrawlOption {
	return func(c *CrawlRunner) {
		c.outputDir = dir
	}
}

// WithPrettyJSON indents the exported mapping.
func WithPrettyJSON(pretty bool) CrawlOption {
	return func(c *CrawlRunner) {
		c.pretty = pretty
	}
}

// WithRecorder records every run, failed ones included.
func WithRecorder(r Recorder) CrawlOption {
	return func(c *CrawlRunner) {
		c.recorder = r
	}
}

// WithProgress sets the progress display.
func WithProgress(p Progress) CrawlOption {
	return func(c *CrawlRunner) {
		c.progress = p
	}
}

// WithCrawlLogger sets the logger.
func WithCrawlLogger(logger *slog.Logger) CrawlOption {
	return func(c *CrawlRunner) {
		c.logger = logger
	}
}

// NewCrawlRunner creates a CrawlRunner fetching pages with fetcher.
func NewCrawlRunner(fetcher crawler.Fetcher, opts ...CrawlOption) *CrawlRunner {
	c := &CrawlRunner{
		fetcher:   fetcher,
		extractor: crawler.NewExtractor(),
		pacer:     crawler.NewFixedDelay(config.DefaultDelay),
		outputDir: config.DefaultOutputDir,
		progress:  NopProgress{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputPath returns the export file of mode.
func (c *CrawlRunner) OutputPath(mode model.Mode) string {
	return filepath.Join(c.outputDir, mode.OutputName()+".json")
}

// Run crawls rootURL for mode. An invalid mode is rejected before any
// request. Otherwise the returned report is never nil: on failure it holds
// the partial mapping and the error is also returned.
func (c *CrawlRunner) Run(ctx context.Context, rootURL string, mode model.Mode) (*model.CrawlReport, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	r := model.NewCrawlReport(mode, rootURL)
	logger := c.logger.With("run", r.ID)
	state := &crawlState{}

	p := New(WithLogger(logger))
	p.AddSteps(
		&FetchRootStep{fetcher: c.fetcher, state: state, logger: logger},
		&ExtractCategoriesStep{extractor: c.extractor, state: state, logger: logger},
		&CollectJobIDsStep{
			fetcher:   c.fetcher,
			extractor: c.extractor,
			pacer:     c.pacer,
			progress:  c.progress,
			logger:    logger,
		},
	)
	p.AddFinalizer(&ExportStep{path: c.OutputPath(mode), pretty: c.pretty, logger: logger})
	if c.recorder != nil {
		p.AddFinalizer(&RecordStep{recorder: c.recorder, logger: logger})
	}

	logger.Info("crawl started", "mode", mode, "root", rootURL)
	err := p.Execute(ctx, r)
	logger.Info("crawl finished",
		"mode", mode,
		"status", r.Status,
		"categories", r.Mapping.Len(),
		"jobs", r.JobCount(),
		"elapsed", r.Duration(),
	)

	return r, err
}
