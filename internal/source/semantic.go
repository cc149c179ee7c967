// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/paper-hub/internal/httputil"
	"github.com/pdiddy/paper-hub/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,publicationDate,url"

// SourceSemanticScholar is the Source value stamped on records from this connector.
const SourceSemanticScholar = "Semantic Scholar"

// SemanticConnector queries the Semantic Scholar graph API.
type SemanticConnector struct {
	Client *http.Client
	APIKey string
}

// Name returns the connector identifier.
func (c *SemanticConnector) Name() string { return "semantic_scholar" }

// Fetch queries the Semantic Scholar API and returns normalized records.
// Papers that report an arXiv external id take the arXiv catalog identity
// so the merge engine reconciles them with arXiv-fetched records by id,
// not just by title.
func (c *SemanticConnector) Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Paper, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(maxResults)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	now := time.Now()
	var papers []types.Paper
	for _, paper := range sr.Data {
		id, link := semanticIdentity(paper)
		if id == "" {
			continue
		}

		date := normalizeDate(paper.PublicationDate, []string{types.DateFormat}, now)
		if !withinLookback(date, cfg, now) {
			continue
		}

		names := make([]string, 0, len(paper.Authors))
		for _, a := range paper.Authors {
			names = append(names, a.Name)
		}

		papers = append(papers, types.Paper{
			ID:       id,
			Title:    flatten(paper.Title),
			Authors:  joinAuthors(names),
			Date:     date,
			URL:      link,
			Abstract: capAbstract(paper.Abstract),
			Tags:     []string{},
			Source:   SourceSemanticScholar,
		})
	}
	return papers, nil
}

// s2IDLen is how much of the 40-character Semantic Scholar paper id is
// kept in the catalog id.
const s2IDLen = 12

// semanticIdentity derives the catalog id and canonical url for one API
// record. Entries without any native identifier are skipped by returning
// an empty id.
func semanticIdentity(p semanticPaper) (id, link string) {
	if p.ExternalIDs.ArXiv != "" {
		return ArxivPaperID(p.ExternalIDs.ArXiv), "https://arxiv.org/abs/" + p.ExternalIDs.ArXiv
	}
	if p.PaperID == "" {
		return "", ""
	}
	short := p.PaperID
	if len(short) > s2IDLen {
		short = short[:s2IDLen]
	}
	return "s2-" + short, p.URL
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	PublicationDate string              `json:"publicationDate"`
	URL             string              `json:"url"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
