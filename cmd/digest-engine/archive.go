// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse and export past issues",
	Long: `Archive manages the local SQLite database of published issues. Use
subcommands to list issues, search archived titles, or export one issue
to YAML or JSON.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived issues, newest first",
	RunE:  runArchiveList,
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over archived record titles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveSearch,
}

var archiveExportCmd = &cobra.Command{
	Use:   "export <issue-number>",
	Short: "Export one archived issue to YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveExport,
}

func init() {
	archiveSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	archiveSearchCmd.Flags().Bool("json", false, "output results as JSON")

	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	archiveExportCmd.Flags().String("output", "", "output path (default issue_N.yaml or issue_N.json)")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}

func openArchive() (*archive.Store, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, err
	}
	return archive.NewStore(cfg.Output.ArchiveDir)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	issues, err := store.ListIssues(context.Background())
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Println("Archive is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-16s  %-8s  %s\n", "Issue", "Date", "Records", "Archived")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 60))
	for _, is := range issues {
		fmt.Fprintf(os.Stdout, "%-6d  %-16s  %-8d  %s\n", is.Number, is.Date, is.Records, is.CreatedAt)
	}
	return nil
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := store.SearchTitles(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(os.Stdout, "#%d [%s] %s", r.IssueNumber, r.Section, r.Title)
		if r.URL != "" {
			fmt.Fprintf(os.Stdout, "  %s", r.URL)
		}
		fmt.Fprintln(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid issue number %q", args[0])
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("output")

	switch format {
	case "yaml", "":
		if path == "" {
			path = fmt.Sprintf("issue_%d.yaml", number)
		}
		if err := store.ExportIssueYAML(context.Background(), number, path); err != nil {
			return err
		}
	case "json":
		if path == "" {
			path = fmt.Sprintf("issue_%d.json", number)
		}
		if err := store.ExportIssueJSON(context.Background(), number, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", path)
	return nil
}
