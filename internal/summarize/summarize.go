// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates bounded-length natural-language summaries of
// paper abstracts via a chat-completion API.
package summarize

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Backend produces one summary per call. Implementations wrap a concrete
// completion API so tests can supply a mock.
type Backend interface {
	Summarize(ctx context.Context, content string, maxWords int) (string, error)
}

// All summarizes contents in index order. Each item's failure is recovered
// locally and rendered as an inline error description at that index; it
// never aborts processing of subsequent items. The returned slice has
// exactly one outcome per input index.
func All(ctx context.Context, backend Backend, contents []string, maxWords int) []types.SummaryOutcome {
	outcomes := make([]types.SummaryOutcome, len(contents))
	for i, content := range contents {
		summary, err := backend.Summarize(ctx, content, maxWords)
		if err != nil {
			outcomes[i] = types.SummaryOutcome{Err: fmt.Sprintf("Error summarizing paper %d: %v", i, err)}
			continue
		}
		outcomes[i] = types.SummaryOutcome{Summary: summary}
	}
	return outcomes
}
