package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for careermap.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "careermap",
		Short: "Map career categories to job ids and fetch their details",
		Long: `careermap crawls the SEEK career advice pages and maps every theme or
industry to the job ids listed on its detail page.

The mapping is written to data/themes.json or data/industries.json and can
then drive the GraphQL API stage, which stores one response per category.
Every crawl is recorded in a local history database so that runs can be
listed and compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .careermap in current, XDG config or home directory)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().Bool("no-progress", false, "Disable the progress spinner")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
