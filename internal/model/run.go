package model

import "time"

// RunInfo is the metadata of a recorded crawl run, without its mapping.
type RunInfo struct {
	ID            string    `json:"id"`
	Mode          Mode      `json:"mode"`
	RootURL       string    `json:"root_url"`
	RootHash      string    `json:"root_hash,omitempty"`
	Status        RunStatus `json:"status"`
	ErrorMessage  string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at,omitzero"`
	CategoryCount int       `json:"category_count"`
	JobCount      int       `json:"job_count"`
	OutputPath    string    `json:"output_path,omitempty"`
}

// NewRunInfo extracts the metadata of r.
func NewRunInfo(r *CrawlReport) RunInfo {
	info := RunInfo{
		ID:           r.ID,
		Mode:         r.Mode,
		RootURL:      r.RootURL,
		Status:       r.Status,
		ErrorMessage: r.ErrorMessage,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		JobCount:     r.JobCount(),
		OutputPath:   r.OutputPath,
	}
	if r.RootPage != nil {
		info.RootHash = r.RootPage.Hash
	}
	if r.Mapping != nil {
		info.CategoryCount = r.Mapping.Len()
	}
	return info
}

// Duration returns how long the run took, or zero if it never finished.
func (i RunInfo) Duration() time.Duration {
	if i.FinishedAt.IsZero() {
		return 0
	}
	return i.FinishedAt.Sub(i.StartedAt)
}
