// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed projects the newest catalog entries into an RSS 2.0 document.
package feed

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// DefaultMaxItems is how many catalog entries the feed carries.
const DefaultMaxItems = 30

// rssTimeFormat pins timestamps to midnight UTC; catalog dates carry no
// time of day.
const rssTimeFormat = "Mon, 02 Jan 2006 00:00:00 +0000"

// Build renders the catalog's most recent entries as an RSS 2.0 document.
// Entries are taken in catalog order, which is already date-descending;
// the publisher never re-sorts. Item timestamps fall back to the
// channel's lastUpdated timestamp when a record date fails to parse.
func Build(c types.Catalog, cfg types.FeedConfig) ([]byte, error) {
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	language := cfg.Language
	if language == "" {
		language = "en-us"
	}

	channelTime := parseDate(c.LastUpdated, time.Now())

	papers := c.Papers
	if len(papers) > maxItems {
		papers = papers[:maxItems]
	}

	doc := rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         cfg.Title,
			Link:          cfg.SiteURL,
			Description:   cfg.Description,
			Language:      language,
			LastBuildDate: channelTime.Format(rssTimeFormat),
			AtomLink: atomLink{
				Href: cfg.SiteURL + "/feed.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}

	for _, p := range papers {
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        p.URL,
			Description: cdata{Text: itemDescription(p)},
			PubDate:     parseDate(p.Date, channelTime).Format(rssTimeFormat),
			GUID:        p.URL,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling feed: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// itemDescription builds the embedded-HTML description block. Fields are
// HTML-escaped individually; the whole block is CDATA-wrapped by the
// marshaller, so the markup itself survives.
func itemDescription(p types.Paper) string {
	var b strings.Builder

	authors := p.Authors
	if authors == "" {
		authors = "Unknown"
	}
	fmt.Fprintf(&b, "<p><strong>Authors:</strong> %s</p>", html.EscapeString(authors))
	if p.Abstract != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(p.Abstract))
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "<p><strong>Tags:</strong> %s</p>", html.EscapeString(strings.Join(p.Tags, ", ")))
	}
	return b.String()
}

func parseDate(date string, fallback time.Time) time.Time {
	if t, err := time.Parse(types.DateFormat, date); err == nil {
		return t
	}
	return fallback
}

// RSS 2.0 XML structures.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description cdata  `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type cdata struct {
	Text string `xml:",cdata"`
}
