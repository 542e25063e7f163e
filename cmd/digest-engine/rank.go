// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/collect"
	"github.com/pdiddy/digest-engine/internal/rank"
)

var rankCmd = &cobra.Command{
	Use:   "rank [batch-file]",
	Short: "Preview the deduplicated, scored ranking of a batch",
	Long: `Rank loads a batch file written by collect, deduplicates it by fuzzy title
match, scores every record against the configured keywords, and prints the
ranking that digest would select from. Nothing is summarized or archived.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().Int("max-items", 0, "truncate the ranking (0 = show all)")
	rankCmd.Flags().Float64("min-relevance", 0, "minimum relevance score (default 0.15)")
	rankCmd.Flags().Bool("json", false, "output the ranking as JSON")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	bf, err := collect.ReadBatchFile(args[0])
	if err != nil {
		return err
	}

	maxItems, _ := cmd.Flags().GetInt("max-items")
	minRelevance, _ := cmd.Flags().GetFloat64("min-relevance")
	if minRelevance == 0 {
		minRelevance = cfg.Selection.MinRelevance
	}
	if minRelevance == 0 {
		minRelevance = rank.DefaultMinRelevance
	}

	// Batch files carry the keywords they were collected with; scoring
	// uses the same lists so the preview matches what digest would do.
	keywords := bf.Keywords
	if len(keywords.Primary) == 0 {
		keywords = cfg.Keywords
	}

	ranked := rank.FilterAndRank(bf.Records, keywords.Primary, keywords.Secondary, maxItems, minRelevance)
	for i := range ranked {
		ranked[i].Topic = rank.Classify(ranked[i])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Println("No records passed the relevance gate.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-6s  %-16s  %-12s  %s\n",
		"Rank", "Score", "Topic", "Source", "Published", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, rec := range ranked {
		title := rec.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6.2f  %-6s  %-16s  %-12s  %s\n",
			i+1, rec.RelevanceScore, rec.Topic, rec.Source, rec.Published, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d records passed the gate\n", len(ranked), len(bf.Records))
	return nil
}
