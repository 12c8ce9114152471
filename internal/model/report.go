package model

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the outcome of a crawl run.
type RunStatus string

const (
	// RunStatusRunning marks a run that has not finished yet.
	RunStatusRunning RunStatus = "running"

	// RunStatusSucceeded marks a run where every category was processed.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusFailed marks a run aborted by an error. Its mapping is partial.
	RunStatusFailed RunStatus = "failed"
)

// CrawlReport is the record of a single crawl run.
// Pipeline steps fill it in as they go; the finalizers export and store it.
type CrawlReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// Mode is the taxonomy that was crawled.
	Mode Mode `json:"mode"`

	// RootURL is the listing page the categories were read from.
	RootURL string `json:"root_url"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// Status is the run outcome.
	Status RunStatus `json:"status"`

	// RootPage is set once the root listing page has been fetched.
	// A nil RootPage means the run never reached the category extraction.
	RootPage *Page `json:"root_page,omitempty"`

	// Categories holds the categories in extraction order.
	// Categories after the failing one have no job ids.
	Categories []Category `json:"categories,omitempty"`

	// Mapping holds title -> job ids for every category processed so far.
	Mapping *Mapping `json:"mapping"`

	// Pages lists every page fetched during the run, root page included.
	Pages []Page `json:"pages,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// OutputPath is where the mapping was exported. Empty if no export happened.
	OutputPath string `json:"output_path,omitempty"`

	// Error is the error that aborted the run.
	Error error `json:"-"`

	// ErrorMessage is Error as a string, for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewCrawlReport creates a report for a run that starts now.
func NewCrawlReport(mode Mode, rootURL string) *CrawlReport {
	return &CrawlReport{
		ID:        uuid.NewString(),
		Mode:      mode,
		RootURL:   rootURL,
		StartedAt: time.Now().UTC(),
		Status:    RunStatusRunning,
		Mapping:   NewMapping(),
	}
}

// AddPage records a fetched page. The raw body is dropped.
func (r *CrawlReport) AddPage(p Page) {
	p.Raw = nil
	r.Pages = append(r.Pages, p)
}

// Fail records err as the cause of the run failure.
func (r *CrawlReport) Fail(err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.ErrorMessage = err.Error()
	r.Status = RunStatusFailed
}

// Finish stamps the finish time. A run that has not failed is marked succeeded.
func (r *CrawlReport) Finish() {
	r.FinishedAt = time.Now().UTC()
	if r.Status == RunStatusRunning {
		r.Status = RunStatusSucceeded
	}
}

// Duration returns how long the run took, or zero if it has not finished.
func (r *CrawlReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// JobCount returns the total number of job ids in the mapping.
func (r *CrawlReport) JobCount() int {
	total := 0
	for _, ids := range r.Mapping.All() {
		total += len(ids)
	}
	return total
}
