// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/archive"
	"github.com/pdiddy/digest-engine/internal/collect"
	"github.com/pdiddy/digest-engine/internal/rank"
	"github.com/pdiddy/digest-engine/internal/render"
	"github.com/pdiddy/digest-engine/internal/summary"
	"github.com/pdiddy/digest-engine/pkg/types"
)

const defaultPoolSize = 20

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build a full digest issue from collection to rendered output",
	Long: `Digest runs the whole pipeline: collect candidates (or load a batch file),
deduplicate and rank them, pick the issue sections, summarize the selections
with Claude, render Markdown and HTML, and archive the issue. Records that
were featured in an earlier issue are dropped from the pool.`,
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().String("batch", "", "build from an existing batch file instead of collecting")
	digestCmd.Flags().Int("issue", 0, "issue number (default: latest archived + 1)")
	digestCmd.Flags().Bool("editorial", false, "generate an editor's note from the selections")
	digestCmd.Flags().Bool("no-summaries", false, "skip AI summarization (renders abstracts only)")
	digestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	digestCmd.Flags().StringSlice("skip", nil, "source names to skip when collecting")

	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	applyHTTPDefaults(cmd, &cfg.Collect)
	ctx := context.Background()

	records, keywords, err := digestPool(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Pool: %d collected records\n", len(records))

	store, err := archive.NewStore(cfg.Output.ArchiveDir)
	if err != nil {
		return err
	}
	defer store.Close()

	poolSize := cfg.Selection.MaxItems
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	minRelevance := cfg.Selection.MinRelevance
	if minRelevance == 0 {
		minRelevance = rank.DefaultMinRelevance
	}

	top, rest := rank.FilterAndRankWithRest(records, keywords.Primary, keywords.Secondary, poolSize, minRelevance)
	top, err = dropFeatured(ctx, store, top)
	if err != nil {
		return err
	}
	fmt.Printf("Ranked: %d candidates, %d below the cut\n", len(top), len(rest))

	sections := rank.CategorizeSelections(top)
	unclaimed := rank.Rest(top, sections)

	issueNumber, _ := cmd.Flags().GetInt("issue")
	if issueNumber == 0 {
		latest, err := store.LatestIssueNumber(ctx)
		if err != nil {
			return err
		}
		issueNumber = latest + 1
	}

	now := time.Now()
	issue := render.NewIssue(issueNumber, now, sections, unclaimed)

	if noSummaries, _ := cmd.Flags().GetBool("no-summaries"); !noSummaries {
		if cfg.Summary.APIKey == "" {
			return fmt.Errorf("no Anthropic API key configured: add anthropic-api-key to .secrets/ or pass --no-summaries")
		}
		backend := &summary.ClaudeBackend{APIKey: cfg.Summary.APIKey, Model: cfg.Summary.Model}
		issue.Sections = summarizeSections(ctx, backend, issue.Sections, cfg.Summary)

		if editorial, _ := cmd.Flags().GetBool("editorial"); editorial {
			note, err := summary.GenerateEditorial(ctx, backend, issue.Sections.Selected(), cfg.Summary)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: editorial generation failed: %v\n", err)
			} else {
				issue.Editorial = note
			}
		}
	}

	if err := writeIssueFiles(issue, cfg.Output.OutputDir, now); err != nil {
		return err
	}

	if err := store.SaveIssue(ctx, issue); err != nil {
		return fmt.Errorf("archiving issue: %w", err)
	}
	fmt.Printf("Issue #%d archived\n", issue.Number)
	return nil
}

// digestPool returns the candidate records, either from a batch file or a
// fresh collection run.
func digestPool(ctx context.Context, cmd *cobra.Command, cfg types.PipelineConfig) ([]types.Record, types.KeywordsConfig, error) {
	if batchPath, _ := cmd.Flags().GetString("batch"); batchPath != "" {
		bf, err := collect.ReadBatchFile(batchPath)
		if err != nil {
			return nil, types.KeywordsConfig{}, err
		}
		keywords := bf.Keywords
		if len(keywords.Primary) == 0 {
			keywords = cfg.Keywords
		}
		return bf.Records, keywords, nil
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	collectors := buildCollectors(cfg, skip)
	if len(collectors) == 0 {
		return nil, types.KeywordsConfig{}, fmt.Errorf("all sources skipped")
	}

	out, err := collect.CollectAll(ctx, collectors, cfg.Keywords.Primary, cfg.Collect, os.Stdout)
	if err != nil {
		return nil, types.KeywordsConfig{}, err
	}
	return out.Records, cfg.Keywords, nil
}

// dropFeatured removes pool records already featured in an archived issue.
func dropFeatured(ctx context.Context, store *archive.Store, pool []types.Record) ([]types.Record, error) {
	titles := make([]string, len(pool))
	for i, rec := range pool {
		titles[i] = rec.Title
	}
	featured, err := store.PreviouslyFeatured(ctx, titles)
	if err != nil {
		return nil, err
	}
	if len(featured) == 0 {
		return pool, nil
	}

	kept := pool[:0]
	for _, rec := range pool {
		if n, ok := featured[rank.NormalizeTitle(rec.Title)]; ok {
			fmt.Printf("skipping %q, featured in issue #%d\n", rec.Title, n)
			continue
		}
		kept = append(kept, rec)
	}
	return kept, nil
}

// summarizeSections attaches AI summaries to every sectioned record.
func summarizeSections(ctx context.Context, backend summary.AIBackend, sections types.Sections, cfg types.SummaryConfig) types.Sections {
	sections.TextPapers = summary.BatchSummarize(ctx, backend, sections.TextPapers, cfg, os.Stdout)
	sections.TextBlogs = summary.BatchSummarize(ctx, backend, sections.TextBlogs, cfg, os.Stdout)
	sections.OtherPapers = summary.BatchSummarize(ctx, backend, sections.OtherPapers, cfg, os.Stdout)
	return sections
}

// writeIssueFiles renders the issue as Markdown, HTML, and JSON next to
// each other in the output directory.
func writeIssueFiles(issue types.Issue, outputDir string, now time.Time) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	mdPath := filepath.Join(outputDir, render.Filename(issue.Number, now, "md"))
	if err := os.WriteFile(mdPath, []byte(render.Markdown(issue)), 0o644); err != nil {
		return fmt.Errorf("writing Markdown: %w", err)
	}
	fmt.Println("Wrote", mdPath)

	html, err := render.HTML(issue)
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(outputDir, render.Filename(issue.Number, now, "html"))
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	fmt.Println("Wrote", htmlPath)

	data, err := json.MarshalIndent(issue, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling issue JSON: %w", err)
	}
	jsonPath := filepath.Join(outputDir, render.Filename(issue.Number, now, "json"))
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	fmt.Println("Wrote", jsonPath)
	return nil
}
