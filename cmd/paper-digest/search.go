package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/digest"
	"github.com/pdiddy/paper-digest/internal/feed"
	"github.com/pdiddy/paper-digest/internal/summarize"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Fetch, summarize, and cite recent papers for a topic",
	Long: `Search queries arXiv for the most recently submitted papers matching a
topic, generates a summary per paper, and formats APA and BibTeX citations.

The completion credential is read from the configuration, OPENAI_API_KEY, or
.secrets/openai-api-key. Without one, each summary is reported inline as an
error while papers and citations still succeed.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	format, _ := cmd.Flags().GetString("format")

	cfg := loadConfig()
	if maxWords, _ := cmd.Flags().GetInt("max-words"); maxWords > 0 {
		cfg.Summary.MaxWords = maxWords
	}

	fetcher := feed.NewFetcher(cfg.Feed)
	backend := summarize.NewOpenAIBackend(cfg.Summary)

	d, err := digest.Build(cmd.Context(), fetcher, backend, query, maxResults, cfg.Summary.MaxWords)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return digest.FormatJSON(d, os.Stdout)
	case "yaml":
		return digest.FormatYAML(d, os.Stdout)
	case "bibtex":
		digest.FormatBibTeX(d, os.Stdout)
	case "table":
		digest.FormatTable(d, os.Stdout)
	default:
		return fmt.Errorf("unknown format %q (want table, json, yaml, or bibtex)", format)
	}
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "topic query (required)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of papers (default from config, 5)")
	searchCmd.Flags().Int("max-words", 0, "summary word budget (default from config, 200)")
	searchCmd.Flags().String("format", "table", "output format: table, json, yaml, or bibtex")
	searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}
