// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/internal/catalog"
	"github.com/pdiddy/paper-hub/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the paper catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries, newest first",
	RunE:  runCatalogList,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog counts by source and tag",
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog", "", "catalog file path (default from config)")
	catalogListCmd.Flags().IntP("limit", "n", 20, "maximum entries to list (0 for all)")
	catalogListCmd.Flags().String("tag", "", "only list entries with this tag")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalogPathFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = viper.GetString("catalog.path")
	}
	return path
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	tag, _ := cmd.Flags().GetString("tag")

	c, err := catalog.Load(catalogPathFlag(cmd))
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	listCatalog(c, limit, tag, cmd.OutOrStdout())
	return nil
}

// listCatalog prints matching entries up to limit. The trailing count
// line reports shown-of-matching, so a tag filter narrows the
// denominator too.
func listCatalog(c types.Catalog, limit int, tag string, w io.Writer) {
	shown, matched := 0, 0
	for _, p := range c.Papers {
		if tag != "" && !hasTag(p.Tags, tag) {
			continue
		}
		matched++
		if limit > 0 && shown >= limit {
			continue
		}
		marker := " "
		if p.Featured {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s %-22s %s", marker, p.Date, p.ID, p.Title)
		if len(p.Tags) > 0 {
			line += "  [" + strings.Join(p.Tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
		shown++
	}
	fmt.Fprintf(w, "\n%d of %d papers\n", shown, matched)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	c, err := catalog.Load(catalogPathFlag(cmd))
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	bySource := map[string]int{}
	byTag := map[string]int{}
	for _, p := range c.Papers {
		bySource[p.Source]++
		for _, t := range p.Tags {
			byTag[t]++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Papers: %d (last updated %s)\n", len(c.Papers), c.LastUpdated)
	fmt.Fprintln(out, "\nBy source:")
	for _, src := range sortedKeys(bySource) {
		fmt.Fprintf(out, "  %-20s %d\n", src, bySource[src])
	}
	fmt.Fprintln(out, "\nBy tag:")
	for _, t := range sortedKeys(byTag) {
		fmt.Fprintf(out, "  %-20s %d\n", t, byTag[t])
	}
	return nil
}
