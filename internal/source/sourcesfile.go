// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// SourcesFile is the on-disk representation of the query plan: which
// connectors to hit and with what queries. Operators edit this file to
// tune coverage without touching code.
type SourcesFile struct {
	// MaxResults overrides FetchConfig.MaxResults when positive.
	MaxResults int `yaml:"max_results,omitempty"`

	// DaysLookback overrides FetchConfig.DaysLookback when positive.
	DaysLookback int `yaml:"days_lookback,omitempty"`

	Queries []SourceQuery `yaml:"queries"`
}

// DefaultQueries returns the built-in mechanistic-interpretability query
// plan used when no sources file is given.
func DefaultQueries() []SourceQuery {
	return []SourceQuery{
		{Connector: "arxiv", Query: `all:"mechanistic interpretability"`},
		{Connector: "arxiv", Query: `all:"sparse autoencoder" AND all:interpretability`},
		{Connector: "arxiv", Query: `all:"transformer circuits"`},
		{Connector: "arxiv", Query: `all:superposition AND all:neural AND all:interpretability`},
		{Connector: "arxiv", Query: `all:"activation patching"`},
		{Connector: "arxiv", Query: `all:"feature visualization" AND all:transformer`},
		{Connector: "arxiv", Query: `all:probing AND all:"language model" AND all:interpretability`},
		{Connector: "semantic_scholar", Query: "mechanistic interpretability"},
		{Connector: "semantic_scholar", Query: "sparse autoencoder interpretability"},
	}
}

// ReadSourcesFile loads a query plan from a YAML file.
func ReadSourcesFile(path string) (*SourcesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	var sf SourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}
	if len(sf.Queries) == 0 {
		return nil, fmt.Errorf("sources file %s defines no queries", path)
	}
	for i, q := range sf.Queries {
		if q.Connector == "" || q.Query == "" {
			return nil, fmt.Errorf("sources file %s: query %d is missing connector or query", path, i)
		}
	}
	return &sf, nil
}

// WriteDefaultSourcesFile writes the built-in query plan to path as a
// starting point for customization.
func WriteDefaultSourcesFile(path string) error {
	sf := SourcesFile{Queries: DefaultQueries()}
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling sources file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
