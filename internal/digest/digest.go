// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest composes the fetch, summarize, and cite stages into one
// query response.
package digest

import (
	"context"

	"github.com/pdiddy/paper-digest/internal/cite"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Fetcher retrieves paper metadata for a query. Satisfied by *feed.Fetcher;
// declared here so tests can supply a mock.
type Fetcher interface {
	Fetch(ctx context.Context, query string, maxResults int) ([]types.Paper, error)
}

// Build runs the pipeline for one query: fetch the feed, summarize each
// paper's abstract, format each citation, and assemble the index-aligned
// digest. The fetch completes fully before any summarization begins. A
// fetch failure fails the whole request; per-paper summary failures are
// recorded inline and do not.
func Build(ctx context.Context, fetcher Fetcher, backend summarize.Backend, query string, maxResults, maxWords int) (types.Digest, error) {
	papers, err := fetcher.Fetch(ctx, query, maxResults)
	if err != nil {
		return types.Digest{}, err
	}

	contents := make([]string, len(papers))
	for i, p := range papers {
		contents[i] = p.Summary
	}
	summaries := summarize.All(ctx, backend, contents, maxWords)

	citations := make([]types.Citation, len(papers))
	for i, p := range papers {
		citations[i] = cite.Format(p)
	}

	return types.Digest{Papers: papers, Summaries: summaries, Citations: citations}, nil
}
