package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/feed"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/server"
	"github.com/pdiddy/paper-digest/internal/summarize"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the digest pipeline over HTTP",
	Long: `Serve exposes POST /search. The request body is
{"query": "...", "max_results": 5}; the response carries papers, per-paper
summaries keyed by index (failures inline), and citations. When history.path
is configured, each served query is logged to SQLite.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger := log.New(os.Stderr, "paper-digest: ", log.LstdFlags)

	srv := &server.Server{
		Fetcher:  feed.NewFetcher(cfg.Feed),
		Backend:  summarize.NewOpenAIBackend(cfg.Summary),
		MaxWords: cfg.Summary.MaxWords,
		Log:      logger,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening query history: %w", err)
		}
		defer store.Close()
		srv.History = store
	}

	if cfg.Summary.APIKey == "" {
		logger.Printf("warning: no completion API key configured; summaries will be reported as errors")
	}

	logger.Printf("listening on %s", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, srv.Handler())
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
