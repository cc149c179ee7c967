// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/internal/pipeline"
	"github.com/pdiddy/paper-hub/internal/relevance"
	"github.com/pdiddy/paper-hub/internal/runlog"
	"github.com/pdiddy/paper-hub/internal/source"
	"github.com/pdiddy/paper-hub/internal/tags"
	"github.com/pdiddy/paper-hub/pkg/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultInterval     = 3 * time.Second
	defaultMaxResults   = 40
	defaultDaysLookback = 90
	defaultUserAgent    = "paper-hub/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch new papers and merge them into the catalog",
	Long: `Fetch runs the full aggregation pipeline: it reads the sources file,
queries each configured connector, filters candidates for relevance, tags
the survivors, merges them into the catalog, and saves the result.

A missing catalog file is treated as an empty catalog, so the first run
bootstraps the catalog from scratch. Individual connector failures are
reported as warnings and do not abort the run.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("sources", "sources.yaml", "sources file listing connector queries")
	fetchCmd.Flags().String("catalog", "", "catalog file path (default from config)")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "per-request HTTP timeout")
	fetchCmd.Flags().Duration("interval", defaultInterval, "minimum interval between requests to the same source")
	fetchCmd.Flags().Int("max-results", 0, "maximum results per query (overrides sources file)")
	fetchCmd.Flags().Int("days-lookback", 0, "only accept papers newer than this many days (overrides sources file)")
	fetchCmd.Flags().String("runlog", "", "run history database path (default from config, empty disables)")
	fetchCmd.Flags().Bool("init-sources", false, "write a default sources file and exit")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	sourcesPath, _ := cmd.Flags().GetString("sources")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	daysLookback, _ := cmd.Flags().GetInt("days-lookback")
	runlogPath, _ := cmd.Flags().GetString("runlog")
	initSources, _ := cmd.Flags().GetBool("init-sources")

	if initSources {
		if err := source.WriteDefaultSourcesFile(sourcesPath); err != nil {
			return fmt.Errorf("writing sources file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default sources file to %s\n", sourcesPath)
		return nil
	}

	if catalogPath == "" {
		catalogPath = viper.GetString("catalog.path")
	}
	if runlogPath == "" {
		runlogPath = viper.GetString("run_log.path")
	}

	queries := source.DefaultQueries()
	sf, err := source.ReadSourcesFile(sourcesPath)
	switch {
	case err == nil:
		queries = sf.Queries
		if maxResults == 0 {
			maxResults = sf.MaxResults
		}
		if daysLookback == 0 {
			daysLookback = sf.DaysLookback
		}
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(os.Stderr, "No sources file at %s, using built-in queries\n", sourcesPath)
	default:
		return err
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}
	if daysLookback == 0 {
		daysLookback = defaultDaysLookback
	}

	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			MaxResults:            maxResults,
			DaysLookback:          daysLookback,
			RequestInterval:       interval,
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("fetch.semantic_scholar_api_key")),
		},
		Catalog: types.CatalogConfig{Path: catalogPath},
		RunLog:  types.RunLogConfig{Path: runlogPath},
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	connectors := map[string]source.Connector{
		"arxiv":            &source.ArxivConnector{Client: client},
		"semantic_scholar": &source.SemanticConnector{Client: client, APIKey: cfg.Fetch.SemanticScholarAPIKey},
		"rss":              &source.RSSConnector{Client: client},
	}

	opts := pipeline.Options{
		Connectors: connectors,
		Queries:    queries,
		Filter:     relevance.NewFilter(relevance.DefaultTerms()),
		Tagger:     tags.NewGenerator(tags.DefaultRules()),
		Config:     cfg,
	}

	if runlogPath != "" {
		store, err := runlog.Open(runlogPath)
		if err != nil {
			return fmt.Errorf("opening run log: %w", err)
		}
		defer store.Close()
		opts.RunLog = store
	}

	summary, err := pipeline.Run(cmd.Context(), opts, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d, relevant %d, added %d, catalog now %d papers\n",
		summary.Fetched, summary.Relevant, summary.Accepted, summary.CatalogSize)
	return nil
}
