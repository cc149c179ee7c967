// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// SourceArxiv is the Source value stamped on records from this connector.
const SourceArxiv = "arXiv"

// ArxivConnector queries the arXiv API. Queries use arXiv search syntax,
// e.g. `all:"mechanistic interpretability"`.
type ArxivConnector struct {
	Client *http.Client
}

// Name returns the connector identifier.
func (c *ArxivConnector) Name() string { return "arxiv" }

// Fetch queries the arXiv API sorted by submission date and returns
// normalized records. Entries missing an identifier are skipped; sibling
// entries in the same response are still processed.
func (c *ArxivConnector) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Paper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{
		"search_query": {query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	now := time.Now()
	var papers []types.Paper
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		date := normalizeDate(entry.Published, []string{time.RFC3339, types.DateFormat}, now)
		if !withinLookback(date, cfg, now) {
			continue
		}

		names := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			names = append(names, a.Name)
		}

		papers = append(papers, types.Paper{
			ID:       ArxivPaperID(arxivID),
			Title:    flatten(entry.Title),
			Authors:  joinAuthors(names),
			Date:     date,
			URL:      "https://arxiv.org/abs/" + arxivID,
			Abstract: capAbstract(entry.Summary),
			Tags:     []string{},
			Source:   SourceArxiv,
		})
	}
	return papers, nil
}

// ArxivPaperID returns the catalog id for an arXiv identifier: the source
// tag plus the identifier with "/" and "." folded to "-", so re-fetching
// the same paper always yields the same id.
func ArxivPaperID(arxivID string) string {
	id := strings.ReplaceAll(arxivID, "/", "-")
	id = strings.ReplaceAll(id, ".", "-")
	return "arxiv-" + id
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041"). The version
// suffix is stripped so a revised paper keeps its catalog identity.
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
