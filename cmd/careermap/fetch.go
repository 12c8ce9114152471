package main

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/nao1215/careermap/internal/config"
	"github.com/nao1215/careermap/internal/graphql"
	"github.com/nao1215/careermap/internal/model"
	"github.com/nao1215/careermap/internal/pipeline"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <theme|industry>",
		Short: "Query the GraphQL API for every category of a crawled mapping",
		Long: `Fetch reads <output-dir>/themes.json or <output-dir>/industries.json and
sends one GraphQL request per category, with the category's job ids as the
aliases variable of the payload template. Each raw response is written to
<output-dir>/<themes|industries>/<category-slug>.json.

The endpoint, payload template and request headers usually hold secrets, so
they are read from the configuration file, a .env file or the environment:

  CAREERMAP_API_ENDPOINT      GraphQL endpoint URL
  CAREERMAP_API_PAYLOAD_FILE  JSON5 request template
  CAREERMAP_API_HEADERS       JSON5 object of extra headers

Examples:
  # Fetch details for every theme in data/themes.json
  careermap fetch theme

  # Override the endpoint and add a header
  careermap fetch industry --endpoint https://example.com/graphql -H x-seek-site=chalice`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory holding the mapping and receiving the responses")
	cmd.Flags().String("endpoint", "",
		"GraphQL endpoint URL")
	cmd.Flags().StringP("payload", "p", "",
		"JSON5 request template file")
	cmd.Flags().StringToStringP("header", "H", nil,
		"Extra request header as key=value (repeatable)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultAPITimeout,
		"Timeout of each API request")
	addPacingFlags(cmd)

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyFetchFlags(cmd, cfg); err != nil {
		return err
	}

	mode, err := model.ParseMode(args[0])
	if err != nil {
		return err
	}
	if err := cfg.ValidateAPI(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)

	payload, err := graphql.LoadPayload(cfg.API.PayloadFile)
	if err != nil {
		return err
	}
	client, err := graphql.NewClient(cfg.API.Endpoint, payload,
		graphql.WithHeaders(cfg.API.Headers),
		graphql.WithTimeout(cfg.API.Timeout),
		graphql.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	runner := pipeline.NewAPIFetchRunner(client,
		pipeline.WithAPIPacer(newPacer(cfg)),
		pipeline.WithAPIOutputDir(cfg.OutputDir),
		pipeline.WithAPIProgress(newProgress(cfg, mode.OutputName())),
		pipeline.WithAPILogger(logger),
	)

	result, err := runner.Run(ctx, mode)
	if result != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d categories from %s\n", len(result.Files), result.InputPath)
	}
	return err
}

// applyFetchFlags overrides cfg with the fetch flags given on the command line.
func applyFetchFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("endpoint") {
		if cfg.API.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return err
		}
	}
	if flags.Changed("payload") {
		if cfg.API.PayloadFile, err = flags.GetString("payload"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.API.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("header") {
		headers, err := flags.GetStringToString("header")
		if err != nil {
			return err
		}
		if cfg.API.Headers == nil {
			cfg.API.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(cfg.API.Headers, headers)
	}

	return applyPacingFlags(cmd, cfg)
}
