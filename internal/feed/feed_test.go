// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/paper-hub/pkg/types"
)

func feedCfg() types.FeedConfig {
	return types.FeedConfig{
		Title:       "Mechanistic Interpretability Hub",
		SiteURL:     "https://hub.example.org",
		Description: "Latest research in mechanistic interpretability",
	}
}

func TestBuildCapsAtThirtyItemsInCatalogOrder(t *testing.T) {
	c := types.Catalog{LastUpdated: "2024-05-01"}
	for i := 0; i < 40; i++ {
		c.Papers = append(c.Papers, types.Paper{
			ID:    fmt.Sprintf("arxiv-%04d", i),
			Title: fmt.Sprintf("Paper %02d", i),
			URL:   fmt.Sprintf("https://arxiv.org/abs/%04d", i),
			Date:  "2024-04-30",
		})
	}

	out, err := Build(c, feedCfg())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	if got := strings.Count(s, "<item>"); got != 30 {
		t.Errorf("item count = %d, want 30", got)
	}
	if !strings.Contains(s, "Paper 00") || strings.Contains(s, "Paper 30") {
		t.Error("feed should carry the first 30 catalog entries, in order")
	}
	if strings.Index(s, "Paper 00") > strings.Index(s, "Paper 01") {
		t.Error("items must appear in catalog order")
	}
}

func TestBuildChannelMetadata(t *testing.T) {
	c := types.Catalog{LastUpdated: "2024-05-01"}
	out, err := Build(c, feedCfg())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`,
		"<title>Mechanistic Interpretability Hub</title>",
		"<link>https://hub.example.org</link>",
		"<language>en-us</language>",
		"<lastBuildDate>Wed, 01 May 2024 00:00:00 +0000</lastBuildDate>",
		`<atom:link href="https://hub.example.org/feed.xml" rel="self" type="application/rss+xml">`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("feed missing %s\n%s", want, s)
		}
	}
}

func TestBuildItemFields(t *testing.T) {
	c := types.Catalog{
		LastUpdated: "2024-05-01",
		Papers: []types.Paper{{
			ID:       "arxiv-2405-12345",
			Title:    "Features & Circuits <in> Superposition",
			Authors:  "Ada Lovelace, Alan Turing",
			Date:     "2024-04-30",
			URL:      "https://arxiv.org/abs/2405.12345?a=1&b=2",
			Abstract: "We study <features> & circuits.",
			Tags:     []string{"SAE", "circuits"},
		}},
	}

	out, err := Build(c, feedCfg())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	// Title and link are field-escaped by the XML marshaller.
	if !strings.Contains(s, "<title>Features &amp; Circuits &lt;in&gt; Superposition</title>") {
		t.Errorf("title not escaped:\n%s", s)
	}
	if !strings.Contains(s, "<guid>https://arxiv.org/abs/2405.12345?a=1&amp;b=2</guid>") {
		t.Errorf("guid should equal the escaped link:\n%s", s)
	}

	// Description is CDATA-wrapped HTML with escaped field content.
	if !strings.Contains(s, "<![CDATA[") {
		t.Errorf("description not CDATA-wrapped:\n%s", s)
	}
	if !strings.Contains(s, "<p><strong>Authors:</strong> Ada Lovelace, Alan Turing</p>") {
		t.Errorf("description missing authors block:\n%s", s)
	}
	if !strings.Contains(s, "<p>We study &lt;features&gt; &amp; circuits.</p>") {
		t.Errorf("abstract not HTML-escaped inside description:\n%s", s)
	}
	if !strings.Contains(s, "<p><strong>Tags:</strong> SAE, circuits</p>") {
		t.Errorf("description missing tags block:\n%s", s)
	}
	if !strings.Contains(s, "<pubDate>Tue, 30 Apr 2024 00:00:00 +0000</pubDate>") {
		t.Errorf("pubDate wrong:\n%s", s)
	}
}

func TestBuildOmitsEmptyDescriptionBlocks(t *testing.T) {
	c := types.Catalog{
		LastUpdated: "2024-05-01",
		Papers: []types.Paper{{
			ID:   "a1",
			URL:  "http://x/1",
			Date: "2024-04-30",
		}},
	}

	out, err := Build(c, feedCfg())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "<p><strong>Authors:</strong> Unknown</p>") {
		t.Errorf("missing authors fallback:\n%s", s)
	}
	if strings.Contains(s, "<p><strong>Tags:</strong>") {
		t.Error("tagless record should have no tags block")
	}
}

func TestBuildItemDateFallsBackToChannelTimestamp(t *testing.T) {
	c := types.Catalog{
		LastUpdated: "2024-05-01",
		Papers: []types.Paper{{
			ID:   "a1",
			URL:  "http://x/1",
			Date: "yesterday-ish",
		}},
	}

	out, err := Build(c, feedCfg())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(string(out), "<pubDate>Wed, 01 May 2024 00:00:00 +0000</pubDate>") {
		t.Errorf("unparseable record date should fall back to lastUpdated:\n%s", out)
	}
}
