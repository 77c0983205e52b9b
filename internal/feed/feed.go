// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed queries the arXiv API and parses the Atom feed into papers.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// defaultMaxResults bounds a fetch when neither the caller nor the
// configuration specifies a limit.
const defaultMaxResults = 5

// FetchError reports a non-success status from the arXiv API. It carries
// the status and raw body for diagnostics and is fatal to the whole request.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("arXiv API returned HTTP %d: %s", e.Status, e.Body)
}

// ParseError reports a malformed feed document. A single malformed entry
// makes the whole feed untrustworthy, so there is no partial-success mode.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing arXiv feed: %s", e.Reason)
}

// Fetcher retrieves paper metadata from the arXiv API.
type Fetcher struct {
	Client *http.Client
	Config types.FeedConfig
}

// NewFetcher returns a Fetcher with a timeout-bounded client.
func NewFetcher(cfg types.FeedConfig) *Fetcher {
	return &Fetcher{Client: httputil.NewClient(cfg.Timeout), Config: cfg}
}

// Fetch queries arXiv for papers matching query, sorted by submission date
// descending, and parses the Atom feed preserving that order. maxResults
// bounds the number of entries; non-positive values fall back to the
// configured default. One outbound request per call, no retries.
func (f *Fetcher) Fetch(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}
	if maxResults <= 0 {
		maxResults = f.Config.MaxResults
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.Config.UserAgent != "" {
		req.Header.Set("User-Agent", f.Config.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Status: resp.StatusCode, Body: httputil.ErrorBody(resp.Body)}
	}

	var doc atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	papers := make([]types.Paper, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		if entry.ID == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("entry %d has no id", i)}
		}

		p := types.Paper{
			ID:        entry.ID,
			Title:     strings.TrimSpace(entry.Title),
			Summary:   strings.TrimSpace(entry.Summary),
			Published: entry.Published,
			Link:      entry.ID,
		}
		// Author names verbatim, in document order.
		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, a.Name)
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}
