package model

import "github.com/samber/lo"

// MappingDiff describes how a mapping changed between two crawl runs.
type MappingDiff struct {
	// AddedCategories are titles present only in the newer mapping.
	AddedCategories []string `json:"added_categories"`

	// RemovedCategories are titles present only in the older mapping.
	RemovedCategories []string `json:"removed_categories"`

	// Changed lists categories present in both mappings whose job ids differ.
	Changed []CategoryChange `json:"changed"`

	// RootChanged is true when the root page fingerprint differs between runs.
	// The markup of the listing page changing is the usual cause of extraction failures.
	RootChanged bool `json:"root_changed"`
}

// CategoryChange lists the job ids added to and removed from one category.
type CategoryChange struct {
	Title       string   `json:"title"`
	AddedJobs   []string `json:"added_jobs"`
	RemovedJobs []string `json:"removed_jobs"`
}

// DiffMappings compares an older and a newer mapping.
// Titles and job ids are reported in the order they appear in their mapping.
func DiffMappings(older, newer *Mapping) *MappingDiff {
	removed, added := lo.Difference(older.Keys(), newer.Keys())
	diff := &MappingDiff{
		AddedCategories:   added,
		RemovedCategories: removed,
		Changed:           make([]CategoryChange, 0),
	}

	for title, newIDs := range newer.All() {
		oldIDs, ok := older.Get(title)
		if !ok {
			continue
		}
		gone, fresh := lo.Difference(oldIDs, newIDs)
		if len(gone) == 0 && len(fresh) == 0 {
			continue
		}
		diff.Changed = append(diff.Changed, CategoryChange{
			Title:       title,
			AddedJobs:   fresh,
			RemovedJobs: gone,
		})
	}

	return diff
}

// DiffReports compares two crawl reports, including their root fingerprints.
func DiffReports(older, newer *CrawlReport) *MappingDiff {
	diff := DiffMappings(older.Mapping, newer.Mapping)
	if older.RootPage != nil && newer.RootPage != nil {
		diff.RootChanged = older.RootPage.Hash != newer.RootPage.Hash
	}
	return diff
}

// HasChanges reports whether the diff contains any difference.
func (d *MappingDiff) HasChanges() bool {
	return len(d.AddedCategories) > 0 ||
		len(d.RemovedCategories) > 0 ||
		len(d.Changed) > 0 ||
		d.RootChanged
}
