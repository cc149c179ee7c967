// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `max_results: 7
days_lookback: 14
queries:
  - connector: arxiv
    query: all:"activation patching"
  - connector: rss
    query: https://lab.example.org/feed.xml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sf, err := ReadSourcesFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFile: %v", err)
	}
	if sf.MaxResults != 7 || sf.DaysLookback != 14 {
		t.Errorf("overrides = (%d, %d), want (7, 14)", sf.MaxResults, sf.DaysLookback)
	}
	if len(sf.Queries) != 2 {
		t.Fatalf("len(Queries) = %d, want 2", len(sf.Queries))
	}
	if sf.Queries[0].Connector != "arxiv" || sf.Queries[1].Query != "https://lab.example.org/feed.xml" {
		t.Errorf("unexpected queries: %+v", sf.Queries)
	}
}

func TestReadSourcesFileRejectsEmptyAndMalformed(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("queries: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSourcesFile(empty); err == nil {
		t.Error("sources file without queries should error")
	}

	partial := filepath.Join(dir, "partial.yaml")
	if err := os.WriteFile(partial, []byte("queries:\n  - connector: arxiv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSourcesFile(partial); err == nil {
		t.Error("query missing its expression should error")
	}

	if _, err := ReadSourcesFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestWriteDefaultSourcesFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := WriteDefaultSourcesFile(path); err != nil {
		t.Fatalf("WriteDefaultSourcesFile: %v", err)
	}

	sf, err := ReadSourcesFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFile: %v", err)
	}
	if len(sf.Queries) != len(DefaultQueries()) {
		t.Errorf("len(Queries) = %d, want %d", len(sf.Queries), len(DefaultQueries()))
	}
}

func TestDefaultQueriesNameKnownConnectors(t *testing.T) {
	for _, q := range DefaultQueries() {
		switch q.Connector {
		case "arxiv", "semantic_scholar", "rss":
		default:
			t.Errorf("unknown connector %q in default queries", q.Connector)
		}
		if q.Query == "" {
			t.Errorf("empty query for connector %q", q.Connector)
		}
	}
}
