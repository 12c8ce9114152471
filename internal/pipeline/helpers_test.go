package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/nao1215/careermap/internal/crawler"
	"github.com/nao1215/careermap/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.CrawlReport) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, report *model.CrawlReport) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// fakeFetcher serves HTML bodies from memory. Unknown URLs are a 404.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*crawler.Document, error) {
	f.calls = append(f.calls, pageURL)
	body, ok := f.pages[pageURL]
	if !ok {
		return nil, &crawler.TransportError{URL: pageURL, StatusCode: 404}
	}
	return crawler.ParseDocument(pageURL, strings.NewReader(body))
}

// countingPacer counts Wait calls and can run a hook on each.
type countingPacer struct {
	waits  int
	onWait func(n int)
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.onWait != nil {
		p.onWait(p.waits)
	}
	return ctx.Err()
}

// fakeRecorder keeps saved reports in memory.
type fakeRecorder struct {
	mu    sync.Mutex
	saved []*model.CrawlReport
	err   error
}

func (r *fakeRecorder) SaveRun(_ context.Context, report *model.CrawlReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, report)
	return nil
}

// recordingProgress remembers the progress calls.
type recordingProgress struct {
	total    int
	titles   []string
	finished bool
}

func (p *recordingProgress) Start(total int) { p.total = total }
func (p *recordingProgress) Advance(_ int, title string) { p.titles = append(p.titles, title) }
func (p *recordingProgress) Finish() { p.finished = true }

// fakeQuerier returns a canned response per call.
type fakeQuerier struct {
	calls  [][]string
	failAt int
	err    error
}

func (q *fakeQuerier) Query(_ context.Context, aliases []string) (json.RawMessage, error) {
	q.calls = append(q.calls, aliases)
	if q.err != nil && len(q.calls) == q.failAt {
		return nil, q.err
	}
	body, err := json.Marshal(map[string]any{"data": map[string]any{"aliases": aliases}})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func rootHTML(anchor string, cards ...[2]string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div name="` + anchor + `">`)
	for _, c := range cards {
		sb.WriteString(`<a class="_1frdw130" href="` + c[1] + `">` + c[0] + `</a>`)
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}

func rolesHTML(hrefs ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for _, h := range hrefs {
		sb.WriteString(`<a data-analytics-action="Click - Role card" href="` + h + `">role</a>`)
	}
	sb.WriteString(`</body></html>`)
	return sb.String()
}
