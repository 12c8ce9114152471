package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerInterval is the frame interval of the spinner.
const spinnerInterval = 100 * time.Millisecond

// maxTitleLen limits the category title shown next to the spinner.
const maxTitleLen = 48

// Spinner shows a spinner with a "[current/total] title" suffix.
type Spinner struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	label   string
	total   int
	current int
	title   string
}

// New creates a Spinner writing to w. A nil w writes to stderr.
// label is shown before the counter, e.g. "themes".
func New(w io.Writer, label string) *Spinner {
	if w == nil {
		w = os.Stderr
	}
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		// The terminal check looks at the file, not the writer.
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[9], spinnerInterval, opt)
	s.HideCursor = true
	return &Spinner{spinner: s, label: label}
}

// Start begins a run over total categories.
func (p *Spinner) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.title = ""
	p.setSuffix()
	p.spinner.Start()
}

// Advance reports that the current-th category, title, is being processed.
func (p *Spinner) Advance(current int, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.title = title
	p.setSuffix()
}

// Finish stops the spinner and prints a final line.
func (p *Spinner) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinner.FinalMSG = fmt.Sprintf("%s: %d/%d categories processed\n", p.label, p.current, p.total)
	p.spinner.Stop()
}

// Suffix returns the text currently shown next to the spinner.
func (p *Spinner) Suffix() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return formatSuffix(p.label, p.current, p.total, p.title)
}

func (p *Spinner) setSuffix() {
	suffix := formatSuffix(p.label, p.current, p.total, p.title)
	p.spinner.Lock()
	p.spinner.Suffix = suffix
	p.spinner.Unlock()
}

func formatSuffix(label string, current, total int, title string) string {
	if title == "" {
		return fmt.Sprintf(" %s [%d/%d]", label, current, total)
	}
	return fmt.Sprintf(" %s [%d/%d] %s", label, current, total, truncate(title, maxTitleLen))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
