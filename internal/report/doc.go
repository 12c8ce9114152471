// Package report writes careermap output: the exported category mapping and
// human readable views of it.
//
// ExportJSON is the crawl's persistence step; it writes the mapping as a
// bare JSON object (title -> job ids) in extraction order. LoadMapping reads
// it back for the API stage and the summary command.
//
// The Writer implementations render summaries, run diffs and run history:
//   - TextWriter: tables for the terminal (go-pretty)
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with a mermaid pie chart for sharing
package report
