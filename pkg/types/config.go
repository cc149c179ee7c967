// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-hub/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of records requested per query (default 40).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DaysLookback discards records older than this many days at the
	// connector boundary. Zero disables the cutoff.
	DaysLookback int `json:"days_lookback" yaml:"days_lookback"`

	// RequestInterval is the minimum interval between successive requests
	// to the same external source (default 3s). Politeness policy, not a
	// performance knob.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// Path is the catalog JSON file (e.g. "data/papers.json").
	Path string `json:"path" yaml:"path"`
}

// FeedConfig holds settings for the feed publisher.
type FeedConfig struct {
	// Title is the channel title.
	Title string `json:"title" yaml:"title"`

	// SiteURL is the channel link; the self link is SiteURL + "/feed.xml".
	SiteURL string `json:"site_url" yaml:"site_url"`

	// Description is the channel description.
	Description string `json:"description" yaml:"description"`

	// Language is the channel language code (default "en-us").
	Language string `json:"language" yaml:"language"`

	// MaxItems is the number of catalog entries projected into the feed
	// (default 30).
	MaxItems int `json:"max_items" yaml:"max_items"`
}

// RunLogConfig holds settings for the run-history store.
type RunLogConfig struct {
	// Path is the SQLite database file. Empty disables run history.
	Path string `json:"path" yaml:"path"`

	// MaxRows is the default number of runs the `runs` command lists (default 20).
	MaxRows int `json:"max_rows" yaml:"max_rows"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	RunLog  RunLogConfig  `json:"run_log" yaml:"run_log"`
}
