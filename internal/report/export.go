package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/careermap/internal/model"
)

const (
	// dirPerm is used for output directories.
	dirPerm = 0o755
	// filePerm is used for export files.
	filePerm = 0o644
)

// exportOptions holds ExportJSON settings.
type exportOptions struct {
	indent string
}

// ExportOption configures ExportJSON.
type ExportOption func(*exportOptions)

// WithPrettyExport indents the exported JSON by two spaces.
func WithPrettyExport(pretty bool) ExportOption {
	return func(o *exportOptions) {
		if pretty {
			o.indent = "  "
		} else {
			o.indent = ""
		}
	}
}

// ExportJSON writes v as UTF-8 JSON to path, creating parent directories and
// overwriting any existing file. The write is not atomic: a crash part way
// through can leave a truncated file.
func ExportJSON(path string, v any, opts ...ExportOption) error {
	var o exportOptions
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	data, err := encodeJSON(v, o.indent)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil { //nolint:gosec // path is the configured output location
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportRaw writes an already encoded JSON document to path, creating parent
// directories. It is used for API responses, which are stored as received.
func ExportRaw(path string, data json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil { //nolint:gosec // path is the configured output location
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadMapping reads an exported mapping, keeping the file's key order.
func LoadMapping(path string) (*model.Mapping, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured output location
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}

	m := model.NewMapping()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}
	return m, nil
}

var slugReplacer = strings.NewReplacer(" ", "-", "/", "-", `\`, "-")

// Slug turns a category title into a file name stem:
// "Information & Communication Technology" -> "information-&-communication-technology".
func Slug(title string) string {
	return cases.Lower(language.Und).String(slugReplacer.Replace(title))
}

// CategoryFile returns the API result path of title under dir.
func CategoryFile(dir, title string) string {
	return filepath.Join(dir, Slug(title)+".json")
}
