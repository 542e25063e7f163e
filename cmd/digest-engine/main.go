// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the digest-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/digest-engine/internal/secrets"
	"github.com/pdiddy/digest-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the digest-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "digest-engine",
	Short: "Pipeline for a monthly tokenization research digest",
	Long: `digest-engine collects papers and posts about LLM tokenization from academic
APIs, RSS feeds, and community forums, ranks them by keyword relevance, and
renders a monthly newsletter issue with AI-written summaries.

Each pipeline stage is a subcommand: collect gathers candidates into a batch
file, rank previews the scored ranking, digest builds a full issue, and
archive manages past issues.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./digest-engine.yaml or ~/.config/digest-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("digest-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "digest-engine"))
		}
	}

	viper.SetEnvPrefix("DIGEST_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the full configuration from the config file
// with secrets filled in for keys the file leaves empty.
func pipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	if len(cfg.Keywords.Primary) == 0 {
		return cfg, fmt.Errorf("no primary keywords configured: set keywords.primary in the config file")
	}

	cfg.Collect.SemanticScholarAPIKey = secretDefault("semantic-scholar-api-key", cfg.Collect.SemanticScholarAPIKey)
	cfg.Summary.APIKey = secretDefault("anthropic-api-key", cfg.Summary.APIKey)

	if cfg.Collect.HuggingFaceRSS == "" {
		cfg.Collect.HuggingFaceRSS = "https://huggingface.co/blog/feed.xml"
	}
	if cfg.Output.OutputDir == "" {
		cfg.Output.OutputDir = filepath.Join("output", "issues")
	}
	if cfg.Output.ArchiveDir == "" {
		cfg.Output.ArchiveDir = "archive"
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
