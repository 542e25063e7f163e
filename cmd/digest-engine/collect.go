// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/collect"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "digest-engine/0.1"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Gather candidate papers and posts from all sources",
	Long: `Collect queries arXiv, Semantic Scholar, Google Scholar alert feeds, the
Hugging Face blog, LessWrong, the Alignment Forum, and Claude web search for
items matching the configured keywords, and writes them to a batch file.
A failing source is reported as a warning; the batch is built from whatever
the remaining sources returned.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	collectCmd.Flags().Int("lookback", 0, "collection window in days (default 35)")
	collectCmd.Flags().String("output", "", "batch file path (default batches/batch_YYYYMMDD.yaml)")
	collectCmd.Flags().StringSlice("skip", nil, "source names to skip (e.g. web, lesswrong)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	if lookback, _ := cmd.Flags().GetInt("lookback"); lookback > 0 {
		cfg.Collect.LookbackDays = lookback
	}
	applyHTTPDefaults(cmd, &cfg.Collect)

	skip, _ := cmd.Flags().GetStringSlice("skip")
	collectors := buildCollectors(cfg, skip)
	if len(collectors) == 0 {
		return fmt.Errorf("all sources skipped")
	}

	out, err := collect.CollectAll(context.Background(), collectors, cfg.Keywords.Primary, cfg.Collect, os.Stdout)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join("batches", fmt.Sprintf("batch_%s.yaml", time.Now().Format("20060102")))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating batch directory: %w", err)
	}

	if err := collect.WriteBatchFile(path, cfg.Keywords, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", len(out.Records), path)
	return nil
}

// applyHTTPDefaults fills in HTTP settings from flags and defaults.
func applyHTTPDefaults(cmd *cobra.Command, cfg *types.CollectConfig) {
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.InterSourceDelay == 0 {
		cfg.InterSourceDelay = defaultDelay
	}
}

// buildCollectors assembles one collector per configured source, minus
// any in skip. Sources missing required configuration are left out with
// a warning rather than failing the run.
func buildCollectors(cfg types.PipelineConfig, skip []string) []collect.Collector {
	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	client := &http.Client{Timeout: cfg.Collect.Timeout}

	var collectors []collect.Collector
	add := func(c collect.Collector) {
		if !skipped[c.Name()] {
			collectors = append(collectors, c)
		}
	}

	add(&collect.ArxivCollector{Client: client})
	add(&collect.SemanticScholarCollector{Client: client, APIKey: cfg.Collect.SemanticScholarAPIKey})
	add(&collect.HuggingFaceBlogCollector{Client: client})
	add(collect.NewLessWrongCollector(client))
	add(collect.NewAlignmentForumCollector(client))

	if len(cfg.Collect.ScholarAlertFeeds) > 0 {
		add(&collect.ScholarAlertsCollector{Client: client})
	} else if !skipped["google_scholar"] {
		fmt.Fprintln(os.Stderr, "warning: no scholar alert feeds configured, skipping google_scholar")
	}

	if cfg.Summary.APIKey != "" {
		model := cfg.Summary.WebSearchModel
		if model == "" {
			model = cfg.Summary.Model
		}
		add(&collect.WebSearchCollector{Client: client, APIKey: cfg.Summary.APIKey, Model: model})
	} else if !skipped["web"] {
		fmt.Fprintln(os.Stderr, "warning: no Anthropic API key configured, skipping web search")
	}

	return collectors
}
