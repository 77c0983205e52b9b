// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline.
package types

// Paper is one entry parsed from the arXiv Atom feed.
type Paper struct {
	// ID is the canonical arXiv abstract URL. Always non-empty for a
	// successfully parsed entry; an entry without one is rejected during
	// parsing and never propagated downstream.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract text as provided by the feed. This is the raw
	// upstream abstract, not the generated summary.
	Summary string `json:"summary" yaml:"summary"`

	// Published is the publication timestamp in the feed's native format.
	// The first four characters carry the publication year.
	Published string `json:"published" yaml:"published"`

	// Authors lists author display names in document order.
	Authors []string `json:"authors" yaml:"authors"`

	// Link is the canonical URL, identical to ID.
	Link string `json:"link" yaml:"link"`
}

// SummaryOutcome is the per-paper result of a summarization attempt: either
// a generated summary or an inline error description. Exactly one of the
// two fields is set.
type SummaryOutcome struct {
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Err     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the summarization attempt succeeded.
func (o SummaryOutcome) OK() bool { return o.Err == "" }

// Text returns the summary on success or the error description on failure.
func (o SummaryOutcome) Text() string {
	if o.Err != "" {
		return o.Err
	}
	return o.Summary
}

// Citation holds formatted citation strings for one paper. Citations are
// derived on demand from Paper metadata and never persisted.
type Citation struct {
	APA    string `json:"apa" yaml:"apa"`
	BibTeX string `json:"bibtex" yaml:"bibtex"`
}

// Digest is the assembled response for one query: parallel sequences
// aligned by index to the same paper ordering. Built once per request,
// returned, then discarded.
type Digest struct {
	Papers    []Paper          `json:"papers" yaml:"papers"`
	Summaries []SummaryOutcome `json:"summaries" yaml:"summaries"`
	Citations []Citation       `json:"citations" yaml:"citations"`
}
