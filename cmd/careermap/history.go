package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/careermap/internal/database"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded crawl runs and compare the latest two",
		Long: `History shows the crawl runs recorded in the history database.

With --diff it compares the two most recent successful runs of a mode and
reports added and removed categories, job ids that moved in or out of each
category, and whether the listing page changed between the runs. A changed
listing page with no other difference is a hint that the site markup moved.

Examples:
  # List every recorded run
  careermap history

  # List theme runs as Markdown
  careermap history --mode theme --markdown

  # Compare the last two successful industry crawls
  careermap history --mode industry --diff

  # Summarise the mapping of one run (a unique id prefix is enough)
  careermap history --show 3f2a

  # Delete a run
  careermap history --delete 3f2a9c1e-...`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("mode", "",
		"Only show runs of this mode (theme or industry)")
	cmd.Flags().Bool("diff", false,
		"Compare the two most recent successful runs of --mode")
	cmd.Flags().String("show", "",
		"Summarise the mapping of the run with this id")
	cmd.Flags().String("delete", "",
		"Delete the run with this id")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	cmd.MarkFlagsMutuallyExclusive("diff", "show", "delete")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cfg)

	flags := cmd.Flags()
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}

	var mode model.Mode
	if m := stringFlag(cmd, "mode"); m != "" {
		if mode, err = model.ParseMode(m); err != nil {
			return err
		}
	}

	diff := boolFlag(cmd, "diff")
	if diff && mode == "" {
		return errors.New("--diff requires --mode")
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := report.NewWriter(outputFormat(cmd), cmd.OutOrStdout())

	switch {
	case diff:
		return diffLatestRuns(ctx, db, mode, w)
	case stringFlag(cmd, "show") != "":
		return showRun(ctx, db, stringFlag(cmd, "show"), w)
	case stringFlag(cmd, "delete") != "":
		return deleteRun(ctx, db, stringFlag(cmd, "delete"), cmd.OutOrStdout())
	default:
		runs, err := db.ListRuns(ctx, mode)
		if err != nil {
			return err
		}
		_, err = w.WriteRuns(runs)
		return err
	}
}

// diffLatestRuns compares the two most recent successful runs of mode.
func diffLatestRuns(ctx context.Context, db *database.HistoryDB, mode model.Mode, w report.Writer) error {
	runs, err := db.LatestRuns(ctx, mode, 2, true)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("need two successful %s runs to compare, found %d", mode, len(runs))
	}

	// LatestRuns is newest first.
	_, err = w.WriteDiff(model.DiffReports(runs[1], runs[0]))
	return err
}

// showRun summarises the mapping stored with a run.
func showRun(ctx context.Context, db *database.HistoryDB, id string, w report.Writer) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	_, err = w.WriteSummary(model.NewSummary("run "+run.ID, run.Mapping))
	return err
}

// deleteRun removes a run. A unique id prefix is resolved first.
func deleteRun(ctx context.Context, db *database.HistoryDB, id string, out io.Writer) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if err := db.DeleteRun(ctx, run.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted run %s\n", run.ID)
	return nil
}

// outputFormat maps --json and --markdown to a report format.
func outputFormat(cmd *cobra.Command) report.Format {
	switch {
	case boolFlag(cmd, "json"):
		return report.FormatJSON
	case boolFlag(cmd, "markdown"):
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}
