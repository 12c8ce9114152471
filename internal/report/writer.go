package report

import (
	"io"

	"github.com/nao1215/careermap/internal/model"
)

// Writer renders careermap views. Each method returns the number of bytes
// written.
type Writer interface {
	// WriteSummary renders a mapping summary.
	WriteSummary(summary *model.Summary) (int, error)

	// WriteDiff renders the changes between two runs.
	WriteDiff(diff *model.MappingDiff) (int, error)

	// WriteRuns renders the run history, newest first.
	WriteRuns(runs []model.RunInfo) (int, error)
}

// MultiWriter writes to several Writers in turn, e.g. the terminal and a file.
// It stops at the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteSummary writes the summary to every Writer.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteSummary(summary) })
}

// WriteDiff writes the diff to every Writer.
func (m *MultiWriter) WriteDiff(diff *model.MappingDiff) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteDiff(diff) })
}

// WriteRuns writes the runs to every Writer.
func (m *MultiWriter) WriteRuns(runs []model.RunInfo) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteRuns(runs) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Format selects a Writer implementation.
type Format string

const (
	// FormatText renders terminal tables.
	FormatText Format = "text"
	// FormatJSON renders JSON.
	FormatJSON Format = "json"
	// FormatMarkdown renders Markdown.
	FormatMarkdown Format = "markdown"
)

// NewWriter returns the Writer for format. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewTextWriter(output)
	}
}
