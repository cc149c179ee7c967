// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches raw records from external paper sources and
// normalizes them into catalog shape. Each connector (arXiv, Semantic
// Scholar, RSS) implements the Connector interface per the Strategy
// pattern; cross-source dedup is the merge engine's job, not theirs.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// Connector fetches and normalizes records from one external source.
// Implementations return records with empty Tags and Featured false; a
// transport failure is an error for the caller to degrade, while a
// malformed entry inside an otherwise valid response is skipped silently.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Paper, error)
}

// SourceQuery names one query against one connector.
type SourceQuery struct {
	// Connector is the connector name ("arxiv", "semantic_scholar", "rss").
	Connector string `yaml:"connector"`

	// Query is the connector-specific search expression, or the feed URL
	// for the RSS connector.
	Query string `yaml:"query"`
}

// FetchOutput holds the accumulated batch and per-query failure notes.
type FetchOutput struct {
	Papers []types.Paper
	Errors []string
}

// FetchAll runs every query sequentially against its connector, pacing
// requests to the same source through pacer. A failing query degrades to
// zero records with a warning on w; it never aborts the batch.
func FetchAll(ctx context.Context, connectors map[string]Connector, queries []SourceQuery, cfg types.FetchConfig, pacer *Pacer, w io.Writer) FetchOutput {
	var out FetchOutput
	for _, q := range queries {
		c, ok := connectors[q.Connector]
		if !ok {
			msg := fmt.Sprintf("%s: unknown connector", q.Connector)
			out.Errors = append(out.Errors, msg)
			fmt.Fprintf(w, "warning: %s\n", msg)
			continue
		}

		if err := pacer.Wait(ctx, c.Name()); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", c.Name(), err))
			return out
		}

		papers, err := c.Fetch(ctx, q.Query, cfg)
		if err != nil {
			msg := fmt.Sprintf("%s %q: %v", c.Name(), q.Query, err)
			out.Errors = append(out.Errors, msg)
			fmt.Fprintf(w, "warning: query failed: %s\n", msg)
			continue
		}
		out.Papers = append(out.Papers, papers...)
	}
	return out
}

// Pacer enforces a minimum interval between successive requests to the
// same external source. It is an explicit gate rather than a fixed sleep
// between pipeline steps, so only consecutive hits on one source wait.
type Pacer struct {
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// NewPacer returns a Pacer with the given minimum interval. A zero or
// negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous request to source, or returns early with the context error.
func (p *Pacer) Wait(ctx context.Context, source string) error {
	if p.interval <= 0 {
		return nil
	}
	if prev, ok := p.last[source]; ok {
		if wait := p.interval - p.now().Sub(prev); wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	p.last[source] = p.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// maxAuthors and maxAbstract are the Data Model caps applied by every connector.
const (
	maxAuthors  = 5
	maxAbstract = 500
)

// joinAuthors returns a comma-joined author list capped at maxAuthors
// names, with an "et al." marker when more exist.
func joinAuthors(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			trimmed = append(trimmed, n)
		}
	}
	if len(trimmed) <= maxAuthors {
		return strings.Join(trimmed, ", ")
	}
	return strings.Join(trimmed[:maxAuthors], ", ") + ", et al."
}

// capAbstract collapses whitespace (including newlines) and truncates to
// at most maxAbstract bytes without splitting a multi-byte rune.
func capAbstract(s string) string {
	s = flatten(s)
	if len(s) <= maxAbstract {
		return s
	}
	cut := maxAbstract
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// flatten trims and collapses all whitespace runs to single spaces.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeDate converts a source timestamp to YYYY-MM-DD, trying the
// given layouts in order and defaulting to the run date when none parse.
func normalizeDate(raw string, layouts []string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(types.DateFormat)
		}
	}
	return now.Format(types.DateFormat)
}

// withinLookback reports whether a record dated date (YYYY-MM-DD) falls
// inside the configured lookback window. A zero lookback disables the cutoff.
func withinLookback(date string, cfg types.FetchConfig, now time.Time) bool {
	if cfg.DaysLookback <= 0 {
		return true
	}
	cutoff := now.AddDate(0, 0, -cfg.DaysLookback).Format(types.DateFormat)
	return date >= cutoff
}
