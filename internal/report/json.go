package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/careermap/internal/model"
)

// JSONWriter outputs views as JSON. HTML characters are written as is, so
// titles such as "Trades & Services" stay readable.
type JSONWriter struct {
	baseWriter

	// indentString is the indentation per level; empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets the indentation string used for each level.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = indent
	}
}

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSummary outputs the summary.
func (w *JSONWriter) WriteSummary(summary *model.Summary) (int, error) {
	return w.writeJSON(summary)
}

// WriteDiff outputs the diff.
func (w *JSONWriter) WriteDiff(diff *model.MappingDiff) (int, error) {
	return w.writeJSON(diff)
}

// WriteRuns outputs the runs as a JSON array.
func (w *JSONWriter) WriteRuns(runs []model.RunInfo) (int, error) {
	if runs == nil {
		runs = []model.RunInfo{}
	}
	return w.writeJSON(runs)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	data, err := encodeJSON(v, w.indentString)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}

// encodeJSON encodes v without HTML escaping. The result ends with a newline.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
