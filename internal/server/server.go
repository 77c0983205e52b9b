// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the digest pipeline over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pdiddy/paper-digest/internal/digest"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// defaultMaxResults bounds a request that does not specify max_results.
const defaultMaxResults = 5

// History records served queries. Satisfied by *history.Store; nil disables
// recording.
type History interface {
	Record(query string, maxResults, papers, failedSummaries int, elapsed time.Duration) error
}

// Server handles digest requests. No state is shared across requests
// beyond the injected collaborators, which are themselves stateless.
type Server struct {
	Fetcher  digest.Fetcher
	Backend  summarize.Backend
	MaxWords int
	History  History
	Log      *log.Logger
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// searchResponse maps summaries by batch index so failed items appear
// inline at their position rather than dropping out.
type searchResponse struct {
	Papers    []types.Paper     `json:"papers"`
	Summaries map[string]string `json:"summaries"`
	Citations []types.Citation  `json:"citations"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	return mux
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}

	start := time.Now()
	d, err := digest.Build(r.Context(), s.Fetcher, s.Backend, req.Query, req.MaxResults, s.MaxWords)
	if err != nil {
		// Fetch failures fail the whole request. The message is surfaced;
		// stack traces are not.
		s.logf("search %q failed: %v", req.Query, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.record(req.Query, req.MaxResults, d, time.Since(start))

	resp := searchResponse{
		Papers:    d.Papers,
		Summaries: make(map[string]string, len(d.Summaries)),
		Citations: d.Citations,
	}
	for i, o := range d.Summaries {
		resp.Summaries[strconv.Itoa(i)] = o.Text()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logf("encoding response: %v", err)
	}
}

func (s *Server) record(query string, maxResults int, d types.Digest, elapsed time.Duration) {
	if s.History == nil {
		return
	}
	failed := 0
	for _, o := range d.Summaries {
		if !o.OK() {
			failed++
		}
	}
	if err := s.History.Record(query, maxResults, len(d.Papers), failed, elapsed); err != nil {
		s.logf("recording history: %v", err)
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Printf(format, args...)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
