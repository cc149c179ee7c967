// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one fetch/merge cycle: connectors pull candidate
// records, the relevance filter gates them, the tag generator annotates
// survivors, and the merge engine folds the batch into the catalog.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-hub/internal/catalog"
	"github.com/pdiddy/paper-hub/internal/relevance"
	"github.com/pdiddy/paper-hub/internal/runlog"
	"github.com/pdiddy/paper-hub/internal/source"
	"github.com/pdiddy/paper-hub/internal/tags"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// Options wires the pipeline's collaborators. Everything is passed in
// explicitly; there is no process-wide state.
type Options struct {
	Connectors map[string]source.Connector
	Queries    []source.SourceQuery
	Filter     *relevance.Filter
	Tagger     *tags.Generator
	Config     types.PipelineConfig

	// RunLog is optional; nil disables run history.
	RunLog *runlog.Store

	// Now is the run clock; defaults to time.Now.
	Now func() time.Time
}

// Summary reports what one run did.
type Summary struct {
	Fetched     int
	Relevant    int
	Accepted    int
	CatalogSize int
	Errors      []string
}

// Run executes one pipeline cycle. Individual query failures degrade to
// empty results; only failure to load or save the catalog aborts.
func Run(ctx context.Context, opts Options, w io.Writer) (Summary, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cat, err := catalog.Load(opts.Config.Catalog.Path)
	if err != nil {
		return Summary{}, err
	}

	pacer := source.NewPacer(opts.Config.Fetch.RequestInterval)
	out := source.FetchAll(ctx, opts.Connectors, opts.Queries, opts.Config.Fetch, pacer, w)

	var batch []types.Paper
	for _, p := range out.Papers {
		if !opts.Filter.Relevant(p.Title, p.Abstract) {
			continue
		}
		p.Tags = opts.Tagger.Tags(p.Title, p.Abstract)
		batch = append(batch, p)
	}

	merged, added := catalog.Merge(cat.Papers, batch)
	cat.Papers = merged
	cat.LastUpdated = now().Format(types.DateFormat)

	if err := catalog.Save(opts.Config.Catalog.Path, cat); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Fetched:     len(out.Papers),
		Relevant:    len(batch),
		Accepted:    added,
		CatalogSize: len(merged),
		Errors:      out.Errors,
	}

	if opts.RunLog != nil {
		run := runlog.Run{
			RanAt:       now(),
			Queries:     len(opts.Queries),
			Fetched:     summary.Fetched,
			Relevant:    summary.Relevant,
			Accepted:    summary.Accepted,
			CatalogSize: summary.CatalogSize,
			Errors:      summary.Errors,
		}
		if err := opts.RunLog.Record(ctx, run); err != nil {
			fmt.Fprintf(w, "warning: recording run history: %v\n", err)
		}
	}

	fmt.Fprintf(w, "fetched %d, relevant %d, added %d new papers (%d total)\n",
		summary.Fetched, summary.Relevant, summary.Accepted, summary.CatalogSize)
	return summary, nil
}
