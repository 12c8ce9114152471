// Package progress renders crawl progress on the terminal.
//
// Spinner implements pipeline.Progress with a single terminal spinner whose
// suffix shows the category being processed, e.g. "themes [3/32] Engineering".
// Nothing is drawn when the writer is not a terminal, so piping careermap
// output to a file leaves only the log lines.
package progress
