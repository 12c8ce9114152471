package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/report"
)

// crawlState carries the parsed root document from FetchRootStep to
// ExtractCategoriesStep. The report keeps only the page metadata.
type crawlState struct {
	root *crawler.Document
}

// errNoRootDocument means ExtractCategoriesStep ran without a fetched root page.
var errNoRootDocument = errors.New("root page has not been fetched")

// FetchRootStep fetches the root listing page.
type FetchRootStep struct {
	fetcher crawler.Fetcher
	state   *crawlState
	logger  *slog.Logger
}

// Name returns the step name.
func (s *FetchRootStep) Name() string {
	return "fetch_root"
}

// Do fetches report.RootURL and records it as the root page.
func (s *FetchRootStep) Do(ctx context.Context, r *model.CrawlReport) error {
	doc, err := s.fetcher.Fetch(ctx, r.RootURL)
	if err != nil {
		return err
	}

	page := doc.Page
	page.Raw = nil
	r.RootPage = &page
	r.AddPage(page)
	s.state.root = doc

	s.logger.Debug("fetched root page", "url", r.RootURL, "hash", page.Hash)
	return nil
}

// ExtractCategoriesStep reads the categories of the report's mode from the root page.
type ExtractCategoriesStep struct {
	extractor *crawler.Extractor
	state     *crawlState
	logger    *slog.Logger
}

// Name returns the step name.
func (s *ExtractCategoriesStep) Name() string {
	return "extract_categories"
}

// Do fills report.Categories.
func (s *ExtractCategoriesStep) Do(_ context.Context, r *model.CrawlReport) error {
	if s.state.root == nil {
		return errNoRootDocument
	}

	categories, err := s.extractor.ExtractCategories(s.state.root, r.Mode)
	if err != nil {
		return err
	}
	r.Categories = categories

	if len(categories) == 0 {
		s.logger.Warn("no categories found", "mode", r.Mode, "anchor", r.Mode.AnchorName())
	} else {
		s.logger.Info("categories found", "mode", r.Mode, "count", len(categories))
	}
	return nil
}

// CollectJobIDsStep visits every category page and collects its job ids.
type CollectJobIDsStep struct {
	fetcher   crawler.Fetcher
	extractor *crawler.Extractor
	pacer     crawler.Pacer
	progress  Progress
	logger    *slog.Logger
}

// Name returns the step name.
func (s *CollectJobIDsStep) Name() string {
	return "collect_job_ids"
}

// Do processes the categories in order. Each category's ids are added to the
// mapping as soon as they are extracted, then the pacer waits, after the
// last category too. The first error stops the loop and the mapping keeps
// what was collected before it.
func (s *CollectJobIDsStep) Do(ctx context.Context, r *model.CrawlReport) error {
	s.progress.Start(len(r.Categories))
	defer s.progress.Finish()

	for i := range r.Categories {
		category := &r.Categories[i]
		s.progress.Advance(i+1, category.Title)

		doc, err := s.fetcher.Fetch(ctx, category.URL)
		if err != nil {
			return err
		}
		r.AddPage(doc.Page)

		ids, err := s.extractor.ExtractJobIDs(doc)
		if err != nil {
			return err
		}

		category.AttachJobIDs(ids)
		r.Mapping.Set(category.Title, ids)
		s.logger.Info("category processed", "title", category.Title, "jobs", len(ids))

		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExportStep writes the mapping to the export file. It is a finalizer: it
// also runs after a failure and then exports the partial mapping. A run
// that never fetched its root page leaves the existing file alone.
type ExportStep struct {
	path   string
	pretty bool
	logger *slog.Logger
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do exports the mapping and sets report.OutputPath.
func (s *ExportStep) Do(_ context.Context, r *model.CrawlReport) error {
	if r.RootPage == nil {
		s.logger.Warn("root page not fetched, export skipped", "path", s.path)
		return nil
	}

	if err := report.ExportJSON(s.path, r.Mapping, report.WithPrettyExport(s.pretty)); err != nil {
		return err
	}
	r.OutputPath = s.path

	s.logger.Info("mapping exported", "path", s.path, "categories", r.Mapping.Len())
	return nil
}

// Recorder stores finished runs.
type Recorder interface {
	SaveRun(ctx context.Context, report *model.CrawlReport) error
}

// RecordStep saves the run in the history database. It is a finalizer.
type RecordStep struct {
	recorder Recorder
	logger   *slog.Logger
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "record"
}

// Do saves the report.
func (s *RecordStep) Do(ctx context.Context, r *model.CrawlReport) error {
	if err := s.recorder.SaveRun(ctx, r); err != nil {
		return err
	}
	s.logger.Debug("run recorded", "run", r.ID, "status", r.Status)
	return nil
}
