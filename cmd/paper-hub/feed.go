// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/internal/catalog"
	"github.com/pdiddy/paper-hub/internal/feed"
	"github.com/pdiddy/paper-hub/pkg/types"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Generate the RSS feed from the catalog",
	Long: `Feed reads the catalog file and writes an RSS 2.0 document containing
the newest papers. It never touches the network, so it can be run on its
own to regenerate the feed after editing the catalog by hand.`,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().String("catalog", "", "catalog file path (default from config)")
	feedCmd.Flags().StringP("output", "o", "feed.xml", "output file path")
	feedCmd.Flags().String("title", "", "feed title (default from config)")
	feedCmd.Flags().String("site-url", "", "site URL for channel and atom:link (default from config)")
	feedCmd.Flags().Int("max-items", feed.DefaultMaxItems, "maximum number of items in the feed")

	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	catalogPath, _ := cmd.Flags().GetString("catalog")
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	siteURL, _ := cmd.Flags().GetString("site-url")
	maxItems, _ := cmd.Flags().GetInt("max-items")

	if catalogPath == "" {
		catalogPath = viper.GetString("catalog.path")
	}
	if title == "" {
		title = viper.GetString("feed.title")
	}
	if siteURL == "" {
		siteURL = viper.GetString("feed.site_url")
	}

	c, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	cfg := types.FeedConfig{
		Title:       title,
		SiteURL:     siteURL,
		Description: viper.GetString("feed.description"),
		Language:    viper.GetString("feed.language"),
		MaxItems:    maxItems,
	}

	data, err := feed.Build(c, cfg)
	if err != nil {
		return fmt.Errorf("building feed: %w", err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}

	n := len(c.Papers)
	if n > maxItems {
		n = maxItems
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items to %s\n", n, output)
	return nil
}
