package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently served queries",
	Long: `History lists queries recorded by the serve command, newest first.
Requires history.path to be configured.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.History.Path == "" {
		return fmt.Errorf("history.path is not configured")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No queries recorded.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%s  %q  papers=%d failed_summaries=%d  %v\n",
			e.At.Format("2006-01-02 15:04:05"), e.Query, e.Papers, e.FailedSummaries, e.Elapsed)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
