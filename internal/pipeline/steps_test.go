package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
)

// TestStepNames tests that each step reports a stable name.
func TestStepNames(t *testing.T) {
	t.Parallel()

	steps := map[string]Step{
		"fetch_root":         &FetchRootStep{},
		"extract_categories": &ExtractCategoriesStep{},
		"collect_job_ids":    &CollectJobIDsStep{},
		"export":             &ExportStep{},
		"record":             &RecordStep{},
	}
	for want, step := range steps {
		if got := step.Name(); got != want {
			t.Errorf("expected name %q, got %q", want, got)
		}
	}
}

// TestExtractCategoriesStep tests the category extraction step.
func TestExtractCategoriesStep(t *testing.T) {
	t.Parallel()

	t.Run("requires a fetched root page", func(t *testing.T) {
		t.Parallel()

		step := &ExtractCategoriesStep{extractor: crawler.NewExtractor(), state: &crawlState{}, logger: quietLogger()}
		if err := step.Do(context.Background(), newReport()); !errors.Is(err, errNoRootDocument) {
			t.Errorf("expected errNoRootDocument, got %v", err)
		}
	})

	t.Run("strict extractor rejects an empty container", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{pages: map[string]string{"https://example.com": rootHTML("browseByThemes")}}
		state := &crawlState{}
		r := newReport()

		fetch := &FetchRootStep{fetcher: fetcher, state: state, logger: quietLogger()}
		if err := fetch.Do(context.Background(), r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		step := &ExtractCategoriesStep{
			extractor: crawler.NewExtractor(crawler.WithCategoryPolicy(crawler.RequireMatch)),
			state:     state,
			logger:    quietLogger(),
		}
		var extractErr *crawler.ExtractionError
		if err := step.Do(context.Background(), r); !errors.As(err, &extractErr) {
			t.Errorf("expected ExtractionError, got %v", err)
		}
	})
}

// TestFetchRootStep tests the root page step.
func TestFetchRootStep(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]string{"https://example.com": rootHTML("browseByThemes")}}
	state := &crawlState{}
	r := newReport()

	step := &FetchRootStep{fetcher: fetcher, state: state, logger: quietLogger()}
	if err := step.Do(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.RootPage == nil || r.RootPage.Raw != nil {
		t.Error("expected root page metadata without body")
	}
	if state.root == nil {
		t.Error("expected parsed document to be kept for extraction")
	}
	if len(r.Pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(r.Pages))
	}
}

// TestExportStep tests the export finalizer.
func TestExportStep(t *testing.T) {
	t.Parallel()

	t.Run("skips when the root page was never fetched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "themes.json")
		step := &ExportStep{path: path, logger: quietLogger()}

		if err := step.Do(context.Background(), newReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no export file")
		}
	})

	t.Run("writes the mapping and sets the output path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "themes.json")
		step := &ExportStep{path: path, logger: quietLogger()}

		r := newReport()
		r.RootPage = &model.Page{URL: r.RootURL}
		r.Mapping.Set("Engineering", []string{"civil-engineer"})

		if err := step.Do(context.Background(), r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.OutputPath != path {
			t.Errorf("expected output path %q, got %q", path, r.OutputPath)
		}
		if got := readExport(t, path); got != `{"Engineering":["civil-engineer"]}` {
			t.Errorf("unexpected export %s", got)
		}
	})
}
