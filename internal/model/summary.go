package model

import (
	"time"

	"github.com/samber/lo"
)

// Summary is a condensed view of an exported mapping for human readers.
type Summary struct {
	// Source is where the mapping was read from (a file path or a run id).
	Source string `json:"source"`

	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Categories holds one entry per category in mapping order.
	Categories []CategorySummary `json:"categories"`

	// TotalJobs counts every job id, duplicates included.
	TotalJobs int `json:"total_jobs"`

	// UniqueJobs counts distinct job ids across all categories.
	// A job may be listed under several categories.
	UniqueJobs int `json:"unique_jobs"`

	// EmptyCategories counts categories without any job id.
	EmptyCategories int `json:"empty_categories"`
}

// CategorySummary is the per-category line of a Summary.
type CategorySummary struct {
	Title    string `json:"title"`
	JobCount int    `json:"job_count"`
}

// NewSummary builds a Summary from a mapping.
func NewSummary(source string, mapping *Mapping) *Summary {
	s := &Summary{
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Categories:  make([]CategorySummary, 0, mapping.Len()),
	}

	all := make([]string, 0)
	for title, ids := range mapping.All() {
		s.Categories = append(s.Categories, CategorySummary{Title: title, JobCount: len(ids)})
		if len(ids) == 0 {
			s.EmptyCategories++
		}
		all = append(all, ids...)
	}
	s.TotalJobs = len(all)
	s.UniqueJobs = len(lo.Uniq(all))

	return s
}
