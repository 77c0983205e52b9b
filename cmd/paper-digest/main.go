// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the paper-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-digest",
	Short: "Recent-paper digests with generated summaries and citations",
	Long: `paper-digest queries arXiv for the most recently submitted papers on a
topic, generates a natural-language summary per paper via a chat-completion
API, and formats APA and BibTeX citations from the same metadata.

Run a one-shot query with "search" or expose the pipeline over HTTP with
"serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env first so the credential fallbacks below can see it.
		godotenv.Load()

		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-digest.yaml or ~/.config/paper-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-digest"))
		}
	}

	viper.SetEnvPrefix("PAPER_DIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("feed.timeout", 30*time.Second)
	viper.SetDefault("feed.user_agent", "paper-digest/0.1")
	viper.SetDefault("feed.max_results", 5)
	viper.SetDefault("summary.model", "gpt-5")
	viper.SetDefault("summary.max_words", 200)
	viper.SetDefault("summary.requests_per_second", 2.0)
	viper.SetDefault("server.addr", ":8080")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper and the loaded
// secrets. The completion credential is resolved in order: config file /
// PAPER_DIGEST_SUMMARY_API_KEY, OPENAI_API_KEY, .secrets/openai-api-key.
func loadConfig() types.Config {
	cfg := types.Config{
		Feed: types.FeedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("feed.timeout"),
				UserAgent: viper.GetString("feed.user_agent"),
			},
			MaxResults: viper.GetInt("feed.max_results"),
		},
		Summary: types.SummaryConfig{
			Model:             viper.GetString("summary.model"),
			APIKey:            viper.GetString("summary.api_key"),
			MaxWords:          viper.GetInt("summary.max_words"),
			RequestsPerSecond: viper.GetFloat64("summary.requests_per_second"),
		},
		History: types.HistoryConfig{Path: viper.GetString("history.path")},
		Server:  types.ServerConfig{Addr: viper.GetString("server.addr")},
	}

	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = loadedSecrets["openai-api-key"]
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
