package model

// Category is a theme or industry scraped from the root page.
// Themes and industries share this shape; Mode records which one it is.
type Category struct {
	// Title is the card text exactly as scraped, including casing and spacing.
	Title string `json:"title"`

	// URL is the absolute URL of the category detail page.
	URL string `json:"url"`

	// Mode is the crawl context the category was extracted in.
	Mode Mode `json:"mode"`

	// JobIDs holds the job identifiers found on the detail page.
	// It is nil until AttachJobIDs is called.
	JobIDs []string `json:"job_ids,omitempty"`
}

// AttachJobIDs records the job ids found on the category detail page.
// The slice is copied so later changes by the caller do not leak in.
func (c *Category) AttachJobIDs(ids []string) {
	c.JobIDs = append(make([]string, 0, len(ids)), ids...)
}

// HasJobIDs reports whether job ids have been attached.
func (c *Category) HasJobIDs() bool {
	return c.JobIDs != nil
}
