package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/report"
)

func writeMapping(t *testing.T, dir string, mode model.Mode, m *model.Mapping) {
	t.Helper()
	if err := report.ExportJSON(filepath.Join(dir, mode.OutputName()+".json"), m); err != nil {
		t.Fatalf("failed to write mapping: %v", err)
	}
}

// TestAPIFetchRunner tests the API stage.
func TestAPIFetchRunner(t *testing.T) {
	t.Parallel()

	mapping := func() *model.Mapping {
		m := model.NewMapping()
		m.Set("Engineering", []string{"civil-engineer", "electrical-engineer"})
		m.Set("Information & Communication Technology", []string{"developer"})
		return m
	}

	t.Run("writes one response per category in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeMapping(t, dir, model.ModeTheme, mapping())

		querier := &fakeQuerier{}
		pacer := &countingPacer{}
		progress := &recordingProgress{}
		runner := NewAPIFetchRunner(querier,
			WithAPIOutputDir(dir),
			WithAPIPacer(pacer),
			WithAPIProgress(progress),
			WithAPILogger(quietLogger()),
		)

		result, err := runner.Run(context.Background(), model.ModeTheme)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantCalls := [][]string{{"civil-engineer", "electrical-engineer"}, {"developer"}}
		if diff := cmp.Diff(wantCalls, querier.calls); diff != "" {
			t.Errorf("aliases mismatch (-want +got):\n%s", diff)
		}

		wantFiles := []string{
			filepath.Join(dir, "themes", "engineering.json"),
			filepath.Join(dir, "themes", "information-&-communication-technology.json"),
		}
		if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
			t.Errorf("files mismatch (-want +got):\n%s", diff)
		}

		data, err := os.ReadFile(wantFiles[1])
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"data":{"aliases":["developer"]}}` {
			t.Errorf("unexpected response file %s", data)
		}
		if pacer.waits != 2 {
			t.Errorf("expected 2 pauses, got %d", pacer.waits)
		}
		if progress.total != 2 || !progress.finished {
			t.Errorf("unexpected progress %+v", progress)
		}
	})

	t.Run("invalid mode is rejected first", func(t *testing.T) {
		t.Parallel()

		querier := &fakeQuerier{}
		runner := NewAPIFetchRunner(querier, WithAPIOutputDir(t.TempDir()), WithAPILogger(quietLogger()))

		_, err := runner.Run(context.Background(), model.Mode("THEME"))
		var vErr *model.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
		if len(querier.calls) != 0 {
			t.Error("expected no API calls")
		}
	})

	t.Run("missing mapping file returns error", func(t *testing.T) {
		t.Parallel()

		runner := NewAPIFetchRunner(&fakeQuerier{}, WithAPIOutputDir(t.TempDir()), WithAPILogger(quietLogger()))

		if _, err := runner.Run(context.Background(), model.ModeIndustry); err == nil {
			t.Error("expected error for missing mapping")
		}
	})

	t.Run("API error stops and keeps earlier files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeMapping(t, dir, model.ModeIndustry, mapping())

		apiErr := errors.New("status 401")
		querier := &fakeQuerier{failAt: 2, err: apiErr}
		runner := NewAPIFetchRunner(querier,
			WithAPIOutputDir(dir),
			WithAPIPacer(crawler.NoPause{}),
			WithAPILogger(quietLogger()),
		)

		result, err := runner.Run(context.Background(), model.ModeIndustry)
		if !errors.Is(err, apiErr) {
			t.Fatalf("expected API error, got %v", err)
		}
		if len(result.Files) != 1 {
			t.Fatalf("expected 1 file, got %v", result.Files)
		}
		if _, err := os.Stat(result.Files[0]); err != nil {
			t.Errorf("expected first response to be kept: %v", err)
		}
	})

	t.Run("titles sharing a slug are logged and the last response wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := model.NewMapping()
		m.Set("Sales Support", []string{"sales-assistant"})
		m.Set("Sales-Support", []string{"sales-coordinator"})
		writeMapping(t, dir, model.ModeTheme, m)

		var logs bytes.Buffer
		runner := NewAPIFetchRunner(&fakeQuerier{},
			WithAPIOutputDir(dir),
			WithAPIPacer(crawler.NoPause{}),
			WithAPILogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))),
		)

		result, err := runner.Run(context.Background(), model.ModeTheme)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(dir, "themes", "sales-support.json")
		if diff := cmp.Diff([]string{path}, result.Files); diff != "" {
			t.Errorf("files mismatch (-want +got):\n%s", diff)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"data":{"aliases":["sales-coordinator"]}}` {
			t.Errorf("expected the later response, got %s", data)
		}
		out := logs.String()
		if !strings.Contains(out, "category file overwritten") || !strings.Contains(out, `previous="Sales Support"`) {
			t.Errorf("expected an overwrite warning naming both titles, got %q", out)
		}
	})
}
