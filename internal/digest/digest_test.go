// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// --- mocks ---

type mockFetcher struct {
	papers []types.Paper
	err    error
}

func (m *mockFetcher) Fetch(_ context.Context, _ string, maxResults int) ([]types.Paper, error) {
	if m.err != nil {
		return nil, m.err
	}
	if maxResults > 0 && len(m.papers) > maxResults {
		return m.papers[:maxResults], nil
	}
	return m.papers, nil
}

type mockSummarizer struct {
	reply  string
	failAt map[int]error
	calls  int
}

func (m *mockSummarizer) Summarize(_ context.Context, _ string, _ int) (string, error) {
	idx := m.calls
	m.calls++
	if err, ok := m.failAt[idx]; ok {
		return "", err
	}
	return m.reply, nil
}

func twoPapers() []types.Paper {
	return []types.Paper{
		{
			ID:        "http://arxiv.org/abs/1111",
			Title:     "First Paper",
			Summary:   "First abstract.",
			Published: "2024-02-02T00:00:00Z",
			Authors:   []string{"A. One"},
			Link:      "http://arxiv.org/abs/1111",
		},
		{
			ID:        "http://arxiv.org/abs/2222",
			Title:     "Second Paper",
			Summary:   "Second abstract.",
			Published: "2024-01-01T00:00:00Z",
			Authors:   []string{"B. Two"},
			Link:      "http://arxiv.org/abs/2222",
		},
	}
}

// --- Build ---

func TestBuildAssemblesAlignedDigest(t *testing.T) {
	fetcher := &mockFetcher{papers: twoPapers()}
	backend := &mockSummarizer{reply: "OK"}

	d, err := Build(context.Background(), fetcher, backend, "transformers", 2, 200)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(d.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(d.Papers))
	}
	// Feed order preserved end to end.
	if d.Papers[0].ID != "http://arxiv.org/abs/1111" || d.Papers[1].ID != "http://arxiv.org/abs/2222" {
		t.Errorf("paper order changed: %q, %q", d.Papers[0].ID, d.Papers[1].ID)
	}

	if len(d.Summaries) != 2 {
		t.Fatalf("len(Summaries) = %d, want 2", len(d.Summaries))
	}
	for i, o := range d.Summaries {
		if o.Text() != "OK" {
			t.Errorf("Summaries[%d] = %q, want OK", i, o.Text())
		}
	}

	if len(d.Citations) != 2 {
		t.Fatalf("len(Citations) = %d, want 2", len(d.Citations))
	}
	if !strings.Contains(d.Citations[0].BibTeX, "@article{1111,") {
		t.Errorf("Citations[0].BibTeX = %q, want key 1111", d.Citations[0].BibTeX)
	}
	if !strings.Contains(d.Citations[1].BibTeX, "@article{2222,") {
		t.Errorf("Citations[1].BibTeX = %q, want key 2222", d.Citations[1].BibTeX)
	}
	if !strings.Contains(d.Citations[0].APA, "First Paper") {
		t.Errorf("Citations[0].APA = %q", d.Citations[0].APA)
	}
}

func TestBuildSummarizesAbstracts(t *testing.T) {
	var gotContents []string
	fetcher := &mockFetcher{papers: twoPapers()}
	backend := summarizeFunc(func(_ context.Context, content string, _ int) (string, error) {
		gotContents = append(gotContents, content)
		return "OK", nil
	})

	if _, err := Build(context.Background(), fetcher, backend, "q", 2, 200); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(gotContents) != 2 || gotContents[0] != "First abstract." || gotContents[1] != "Second abstract." {
		t.Errorf("summarized contents = %v, want the papers' abstracts in order", gotContents)
	}
}

type summarizeFunc func(ctx context.Context, content string, maxWords int) (string, error)

func (f summarizeFunc) Summarize(ctx context.Context, content string, maxWords int) (string, error) {
	return f(ctx, content, maxWords)
}

func TestBuildFetchFailureFailsWholeRequest(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("arXiv API returned HTTP 503")}
	backend := &mockSummarizer{reply: "OK"}

	d, err := Build(context.Background(), fetcher, backend, "q", 2, 200)
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
	if len(d.Papers) != 0 || len(d.Summaries) != 0 || len(d.Citations) != 0 {
		t.Errorf("no partial digest may be returned, got %+v", d)
	}
	if backend.calls != 0 {
		t.Errorf("summarizer called %d times after fetch failure, want 0", backend.calls)
	}
}

func TestBuildSummaryFailureDoesNotFailRequest(t *testing.T) {
	fetcher := &mockFetcher{papers: twoPapers()}
	backend := &mockSummarizer{reply: "OK", failAt: map[int]error{0: errors.New("boom")}}

	d, err := Build(context.Background(), fetcher, backend, "q", 2, 200)
	if err != nil {
		t.Fatalf("Build should succeed despite a summary failure: %v", err)
	}
	if d.Summaries[0].OK() {
		t.Error("Summaries[0] should carry the failure")
	}
	if want := "Error summarizing paper 0: boom"; d.Summaries[0].Err != want {
		t.Errorf("Summaries[0].Err = %q, want %q", d.Summaries[0].Err, want)
	}
	if !d.Summaries[1].OK() || d.Summaries[1].Summary != "OK" {
		t.Errorf("Summaries[1] = %+v, must be unaffected", d.Summaries[1])
	}
	// Citations are independent of summarization failures.
	if len(d.Citations) != 2 {
		t.Errorf("len(Citations) = %d, want 2", len(d.Citations))
	}
}

func TestBuildEmptyFeed(t *testing.T) {
	fetcher := &mockFetcher{}
	d, err := Build(context.Background(), fetcher, &mockSummarizer{reply: "OK"}, "q", 2, 200)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(d.Papers) != 0 || len(d.Summaries) != 0 || len(d.Citations) != 0 {
		t.Errorf("want empty digest, got %+v", d)
	}
}

// --- output formatting ---

func sampleDigest() types.Digest {
	papers := twoPapers()
	return types.Digest{
		Papers: papers,
		Summaries: []types.SummaryOutcome{
			{Summary: "OK"},
			{Err: "Error summarizing paper 1: boom"},
		},
		Citations: []types.Citation{
			{APA: "A. One (2024). First Paper. arXiv. http://arxiv.org/abs/1111", BibTeX: "@article{1111,\n}"},
			{APA: "B. Two (2024). Second Paper. arXiv. http://arxiv.org/abs/2222", BibTeX: "@article{2222,\n}"},
		},
	}
}

func TestFormatTable(t *testing.T) {
	var buf strings.Builder
	FormatTable(sampleDigest(), &buf)
	s := buf.String()

	for _, want := range []string{"First Paper", "Second Paper", "OK", "Error summarizing paper 1", "2 papers"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf strings.Builder
	FormatTable(types.Digest{}, &buf)
	if !strings.Contains(buf.String(), "No papers") {
		t.Errorf("empty output = %q, want 'No papers'", buf.String())
	}
}

func TestFormatBibTeX(t *testing.T) {
	var buf strings.Builder
	FormatBibTeX(sampleDigest(), &buf)
	s := buf.String()
	if !strings.Contains(s, "@article{1111,") || !strings.Contains(s, "@article{2222,") {
		t.Errorf("bibtex output = %q", s)
	}
	if strings.Contains(s, "OK") {
		t.Errorf("bibtex output should not carry summaries: %q", s)
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	var buf strings.Builder
	if err := FormatJSON(sampleDigest(), &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	for _, want := range []string{`"papers"`, `"summaries"`, `"citations"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"none", nil, ""},
		{"one", []string{"A. One"}, "A. One"},
		{"many", []string{"A. One", "B. Two"}, "A. One et al."},
		{"whitespace", []string{"\n  A. One\n  "}, "A. One"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAuthors(tt.authors); got != tt.want {
				t.Errorf("formatAuthors(%v) = %q, want %q", tt.authors, got, tt.want)
			}
		})
	}
}

// End-to-end shape check against real stage wiring (mocked transport lives
// in the feed and summarize package tests).
func TestBuildScenarioTwoPapers(t *testing.T) {
	fetcher := &mockFetcher{papers: twoPapers()}
	backend := &mockSummarizer{reply: "OK"}

	d, err := Build(context.Background(), fetcher, backend, "transformers", 2, 200)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	summaries := make(map[int]string, len(d.Summaries))
	for i, o := range d.Summaries {
		summaries[i] = o.Text()
	}
	if fmt.Sprint(summaries) != fmt.Sprint(map[int]string{0: "OK", 1: "OK"}) {
		t.Errorf("summaries = %v, want {0:OK 1:OK}", summaries)
	}
}
