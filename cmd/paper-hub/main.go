// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-hub CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-hub/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is set, otherwise the secret
// value for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-hub CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-hub",
	Short: "Aggregate and republish mechanistic interpretability papers",
	Long: `paper-hub maintains a curated catalog of mechanistic interpretability
research papers. It fetches candidate records from arXiv, Semantic Scholar,
and RSS feeds, filters them for topical relevance, tags them, merges them
into a deduplicated JSON catalog, and republishes the newest entries as an
RSS feed.

The fetch and feed stages are separate subcommands so the feed can be
regenerated without touching the network.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-hub.yaml or ~/.config/paper-hub/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-hub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-hub"))
		}
	}

	viper.SetEnvPrefix("PAPER_HUB")
	viper.AutomaticEnv()

	viper.SetDefault("catalog.path", filepath.Join("data", "papers.json"))
	viper.SetDefault("run_log.path", "")
	viper.SetDefault("feed.title", "Mechanistic Interpretability Hub")
	viper.SetDefault("feed.site_url", "https://hub.example.org")
	viper.SetDefault("feed.description", "Latest research in mechanistic interpretability - understanding how neural networks work internally")
	viper.SetDefault("feed.language", "en-us")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
