package pipeline

// Progress reports per-category progress to the user.
type Progress interface {
	// Start announces a loop over total categories.
	Start(total int)

	// Advance reports that category number current (1-based) is being processed.
	Advance(current int, title string)

	// Finish ends the progress display.
	Finish()
}

// NopProgress discards progress updates.
type NopProgress struct{}

// Start does nothing.
func (NopProgress) Start(int) {}

// Advance does nothing.
func (NopProgress) Advance(int, string) {}

// Finish does nothing.
func (NopProgress) Finish() {}
