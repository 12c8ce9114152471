package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/careermap/internal/model"
)

// maxPieSlices bounds the pie chart; the remaining categories are grouped.
const maxPieSlices = 10

// MarkdownWriter outputs views as Markdown for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteSummary outputs the summary with a job distribution pie chart.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Career Map Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Generated", summary.GeneratedAt.Format(timeLayout)},
			{"Categories", strconv.Itoa(len(summary.Categories))},
			{"Total jobs", strconv.Itoa(summary.TotalJobs)},
			{"Unique jobs", strconv.Itoa(summary.UniqueJobs)},
		},
	})
	md.PlainText("")

	md.H2("Categories")
	md.PlainText("")
	if len(summary.Categories) == 0 {
		md.PlainText("No categories.")
		md.PlainText("")
	} else {
		rows := make([][]string, len(summary.Categories))
		for i, c := range summary.Categories {
			rows[i] = []string{escapeCell(c.Title), strconv.Itoa(c.JobCount)}
		}
		md.Table(markdown.TableSet{Header: []string{"Category", "Jobs"}, Rows: rows})
		md.PlainText("")
	}

	if summary.TotalJobs > 0 {
		w.writePieChart(md, summary)
	}

	if summary.EmptyCategories > 0 {
		md.Warningf("%d categories have no job ids. The page layout may have changed.", summary.EmptyCategories)
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Jobs per category"),
		piechart.WithShowData(true),
	)

	var other uint64
	for i, c := range summary.Categories {
		if c.JobCount == 0 {
			continue
		}
		if i >= maxPieSlices {
			other += uint64(c.JobCount) //nolint:gosec // counts are never negative
			continue
		}
		chart.LabelAndIntValue(c.Title, uint64(c.JobCount)) //nolint:gosec // counts are never negative
	}
	if other > 0 {
		chart.LabelAndIntValue("Other", other)
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteDiff outputs the diff between two runs.
func (w *MarkdownWriter) WriteDiff(diff *model.MappingDiff) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Career Map Changes")
	md.PlainText("")

	if !diff.HasChanges() {
		md.Tip("No changes between the two runs.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	if diff.RootChanged {
		md.Note("The root page content changed since the previous run.")
		md.PlainText("")
	}

	if len(diff.AddedCategories) > 0 {
		md.H2("Added categories")
		md.BulletList(diff.AddedCategories...)
		md.PlainText("")
	}
	if len(diff.RemovedCategories) > 0 {
		md.H2("Removed categories")
		md.BulletList(diff.RemovedCategories...)
		md.PlainText("")
	}
	if len(diff.Changed) > 0 {
		md.H2("Changed categories")
		rows := make([][]string, len(diff.Changed))
		for i, c := range diff.Changed {
			rows[i] = []string{
				escapeCell(c.Title),
				strings.Join(c.AddedJobs, ", "),
				strings.Join(c.RemovedJobs, ", "),
			}
		}
		md.Table(markdown.TableSet{Header: []string{"Category", "Added", "Removed"}, Rows: rows})
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteRuns outputs the run history table.
func (w *MarkdownWriter) WriteRuns(runs []model.RunInfo) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl History")
	md.PlainText("")

	if len(runs) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			"`" + shortID(r.ID) + "`",
			r.Mode.String(),
			string(r.Status),
			r.StartedAt.Format(timeLayout),
			strconv.Itoa(r.CategoryCount),
			strconv.Itoa(r.JobCount),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Mode", "Status", "Started", "Categories", "Jobs"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [careermap](https://github.com/nao1215/careermap)*")
}

// escapeCell keeps a title from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
