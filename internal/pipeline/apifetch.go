package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/careermap/internal/config"
	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/report"
)

// Querier sends one category's job ids to the API.
type Querier interface {
	Query(ctx context.Context, aliases []string) (json.RawMessage, error)
}

// APIFetchResult lists what an API fetch produced.
type APIFetchResult struct {
	Mode model.Mode `json:"mode"`

	// InputPath is the mapping file that was read.
	InputPath string `json:"input_path"`

	// Files are the response files written, in mapping order.
	Files []string `json:"files"`
}

// APIFetchRunner queries the API for every category of an exported mapping.
type APIFetchRunner struct {
	querier   Querier
	pacer     crawler.Pacer
	outputDir string
	progress  Progress
	logger    *slog.Logger
}

// APIFetchOption configures an APIFetchRunner.
type APIFetchOption func(*APIFetchRunner)

// WithAPIPacer sets the pause between API requests.
func WithAPIPacer(p crawler.Pacer) APIFetchOption {
	return func(a *APIFetchRunner) {
		a.pacer = p
	}
}

// WithAPIOutputDir sets the directory holding the mapping and the responses.
func WithAPIOutputDir(dir string) APIFetchOption {
	return func(a *APIFetchRunner) {
		a.outputDir = dir
	}
}

// WithAPIProgress sets the progress display.
func WithAPIProgress(p Progress) APIFetchOption {
	return func(a *APIFetchRunner) {
		a.progress = p
	}
}

// WithAPILogger sets the logger.
func WithAPILogger(logger *slog.Logger) APIFetchOption {
	return func(a *APIFetchRunner) {
		a.logger = logger
	}
}

// NewAPIFetchRunner creates an APIFetchRunner sending requests through querier.
func NewAPIFetchRunner(querier Querier, opts ...APIFetchOption) *APIFetchRunner {
	a := &APIFetchRunner{
		querier:   querier,
		pacer:     crawler.NewFixedDelay(config.DefaultDelay),
		outputDir: config.DefaultOutputDir,
		progress:  NopProgress{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run reads <outputDir>/<themes|industries>.json and, for each category in
// order, stores the API response in <outputDir>/<themes|industries>/<slug>.json.
// The first failing request stops the run; files already written are kept.
// Categories whose titles share a slug are logged and the last one wins.
func (a *APIFetchRunner) Run(ctx context.Context, mode model.Mode) (*APIFetchResult, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	result := &APIFetchResult{
		Mode:      mode,
		InputPath: filepath.Join(a.outputDir, mode.OutputName()+".json"),
		Files:     make([]string, 0),
	}

	mapping, err := report.LoadMapping(result.InputPath)
	if err != nil {
		return result, err
	}

	dir := filepath.Join(a.outputDir, mode.OutputName())
	a.progress.Start(mapping.Len())
	defer a.progress.Finish()

	// Distinct titles can share a slug; the later response replaces the file.
	written := make(map[string]string, mapping.Len())
	i := 0
	for title, ids := range mapping.All() {
		i++
		a.progress.Advance(i, title)

		body, err := a.querier.Query(ctx, ids)
		if err != nil {
			return result, fmt.Errorf("category %q: %w", title, err)
		}

		path := report.CategoryFile(dir, title)
		if err := report.ExportRaw(path, body); err != nil {
			return result, err
		}
		if previous, ok := written[path]; ok {
			a.logger.Warn("category file overwritten", "category", title, "previous", previous, "path", path)
		} else {
			result.Files = append(result.Files, path)
		}
		written[path] = title
		a.logger.Info("api response saved", "category", title, "jobs", len(ids), "path", path)

		if err := a.pacer.Wait(ctx); err != nil {
			return result, err
		}
	}

	return result, nil
}
