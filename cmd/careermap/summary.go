package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Summarise an exported category mapping",
		Long: `Summary reads a mapping written by 'careermap crawl' and prints the
number of job ids per category, the total and the number of unique ids.

Examples:
  # Table on the terminal
  careermap summary data/themes.json

  # Markdown with a pie chart, e.g. for a pull request
  careermap summary data/industries.json --markdown > industries.md`,
		Args: cobra.ExactArgs(1),
		RunE: runSummaryCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	mapping, err := report.LoadMapping(args[0])
	if err != nil {
		return err
	}

	w := report.NewWriter(outputFormat(cmd), cmd.OutOrStdout())
	_, err = w.WriteSummary(model.NewSummary(args[0], mapping))
	return err
}
