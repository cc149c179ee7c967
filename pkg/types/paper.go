// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-hub pipeline.
package types

// DateFormat is the calendar-date layout used throughout the catalog.
const DateFormat = "2006-01-02"

// Paper is one catalog entry: normalized metadata for a single research
// paper, produced by a source connector and enriched by the tag generator.
// Records are immutable once merged into the catalog; a later run can only
// skip them as duplicates, never edit them.
type Paper struct {
	// ID is globally unique within the catalog, derived deterministically
	// from the source's native identifier (e.g. "arxiv-2301-07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with embedded newlines collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors is a comma-joined author list, capped at five names with an
	// ", et al." marker when more exist.
	Authors string `json:"authors" yaml:"authors"`

	// Date is the publication date in YYYY-MM-DD form. It is the sole
	// sort key for catalog order.
	Date string `json:"date" yaml:"date"`

	// URL is the canonical external link, used as a secondary identity key.
	URL string `json:"url" yaml:"url"`

	// Abstract is capped at 500 characters and newline-free.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Tags holds up to six topical labels in first-discovered order.
	Tags []string `json:"tags" yaml:"tags"`

	// Source names the origin connector (e.g. "arXiv", "Semantic Scholar").
	Source string `json:"source" yaml:"source"`

	// Featured marks manually curated entries. Fetched records are always
	// created with Featured false.
	Featured bool `json:"featured" yaml:"featured"`
}

// Catalog is the durable collection of accepted papers plus a last-updated
// marker. Papers are ordered by date descending; records sharing a date
// keep their original insertion order.
type Catalog struct {
	// LastUpdated is the date of the most recent successful pipeline run,
	// whether or not that run added records.
	LastUpdated string `json:"lastUpdated" yaml:"lastUpdated"`

	Papers []Paper `json:"papers" yaml:"papers"`
}
