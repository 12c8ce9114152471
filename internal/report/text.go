package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/careermap/internal/model"
)

// timeLayout is the timestamp format of text and Markdown output.
const timeLayout = "2006-01-02 15:04:05 MST"

// TextWriter outputs human readable tables for the terminal.
type TextWriter struct {
	baseWriter

	// style is the go-pretty table style.
	style table.Style
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithTableStyle sets the table style, e.g. table.StyleLight.
func WithTableStyle(style table.Style) TextWriterOption {
	return func(w *TextWriter) {
		w.style = style
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		style:      table.StyleRounded,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *TextWriter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(w.style)
	return t
}

// WriteSummary prints one row per category and the totals.
func (w *TextWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary of %s\n", summary.Source)

	t := w.newTable()
	t.AppendHeader(table.Row{"#", "Category", "Jobs"})
	for i, c := range summary.Categories {
		t.AppendRow(table.Row{i + 1, c.Title, c.JobCount})
	}
	t.AppendFooter(table.Row{"", "Total", summary.TotalJobs})
	sb.WriteString(t.Render())
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Categories: %d  Unique jobs: %d  Empty categories: %d\n",
		len(summary.Categories), summary.UniqueJobs, summary.EmptyCategories)

	return io.WriteString(w.output, sb.String())
}

// WriteDiff prints added and removed categories and per-category job changes.
func (w *TextWriter) WriteDiff(diff *model.MappingDiff) (int, error) {
	var sb strings.Builder

	if !diff.HasChanges() {
		sb.WriteString("No changes between the two runs.\n")
		return io.WriteString(w.output, sb.String())
	}

	if diff.RootChanged {
		sb.WriteString("Root page content changed.\n")
	}

	if len(diff.AddedCategories) > 0 || len(diff.RemovedCategories) > 0 {
		t := w.newTable()
		t.AppendHeader(table.Row{"Change", "Category"})
		for _, title := range diff.AddedCategories {
			t.AppendRow(table.Row{"+", title})
		}
		for _, title := range diff.RemovedCategories {
			t.AppendRow(table.Row{"-", title})
		}
		sb.WriteString(t.Render())
		sb.WriteString("\n")
	}

	if len(diff.Changed) > 0 {
		t := w.newTable()
		t.AppendHeader(table.Row{"Category", "Added jobs", "Removed jobs"})
		for _, c := range diff.Changed {
			t.AppendRow(table.Row{c.Title, strings.Join(c.AddedJobs, "\n"), strings.Join(c.RemovedJobs, "\n")})
		}
		sb.WriteString(t.Render())
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// WriteRuns prints the run history.
func (w *TextWriter) WriteRuns(runs []model.RunInfo) (int, error) {
	if len(runs) == 0 {
		return io.WriteString(w.output, "No runs recorded.\n")
	}

	t := w.newTable()
	t.AppendHeader(table.Row{"ID", "Mode", "Status", "Started", "Duration", "Categories", "Jobs", "Error"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			shortID(r.ID),
			r.Mode,
			r.Status,
			r.StartedAt.Local().Format(timeLayout),
			r.Duration().Round(time.Second),
			r.CategoryCount,
			r.JobCount,
			truncateString(r.ErrorMessage, 60),
		})
	}

	return io.WriteString(w.output, t.Render()+"\n")
}

// shortID returns the first block of a UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// truncateString truncates a string to maxLen bytes with an ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
