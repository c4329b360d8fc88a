package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/procura-cli/internal/adapters/driven/export"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

var (
	searchSources  []string
	searchFrom     string
	searchTo       string
	searchMinValue int
	searchJSON     bool
	searchOut      string
	searchNoExport bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search procurement notices across all sources",
	Long: `Queries the configured procurement APIs concurrently, consolidates the
results into one deduplicated list ranked by relevance, and exports the run
as JSON, CSV, Markdown and Word files.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchSources, "sources", "s", nil,
		"sources to query (ted, openopps, sam, contracts_finder; default all)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "publication window start (YYYY-MM-DD, default 30 days ago)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "publication window end (YYYY-MM-DD, default today)")
	searchCmd.Flags().IntVar(&searchMinValue, "min-value", 0, "minimum contract value")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the full result as JSON")
	searchCmd.Flags().StringVarP(&searchOut, "out", "o", "search_results", "directory for exported result files")
	searchCmd.Flags().BoolVar(&searchNoExport, "no-export", false, "skip writing result files")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	applyConfigDefaults(cmd)

	sources := make([]domain.SourceAPI, 0, len(searchSources))
	for _, s := range searchSources {
		api, err := domain.ParseSourceAPI(s)
		if err != nil {
			return err
		}
		sources = append(sources, api)
	}

	params := domain.SearchParams{
		Term:     args[0],
		DateFrom: searchFrom,
		DateTo:   searchTo,
		MinValue: searchMinValue,
		Sources:  sources,
	}

	result, err := coordinator.Run(context.Background(), params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		if err := outputResultJSON(cmd, result); err != nil {
			return err
		}
	} else {
		outputResultSummary(cmd, result)
	}

	if !searchNoExport {
		paths, err := export.NewExporter(searchOut).WriteAll(result)
		if err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		cmd.Println()
		cmd.Println("Exported:")
		for _, p := range paths {
			cmd.Printf("  %s\n", p)
		}
	}

	return nil
}

// applyConfigDefaults fills search flags the user left unset from the
// config file, so `procura search <term>` honours configured defaults
// while explicit flags always win.
func applyConfigDefaults(cmd *cobra.Command) {
	if configStore == nil {
		return
	}

	if len(searchSources) == 0 {
		searchSources = configStore.GetStringSlice("search.default_sources")
	}
	if searchFrom == "" {
		searchFrom = configStore.GetString("search.date_from")
	}
	if searchTo == "" {
		searchTo = configStore.GetString("search.date_to")
	}
	if !cmd.Flags().Changed("min-value") {
		searchMinValue = configStore.GetInt("search.min_value")
	}
	if !cmd.Flags().Changed("out") {
		if dir := configStore.GetString("export.dir"); dir != "" {
			searchOut = dir
		}
	}
}

func outputResultJSON(cmd *cobra.Command, result *domain.ConsolidatedResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultSummary(cmd *cobra.Command, result *domain.ConsolidatedResult) {
	stats := result.Statistics

	cmd.Printf("Found %d notices for %q\n", stats.TotalCount, result.Metadata.Term)
	cmd.Println()

	if stats.TotalCount == 0 && len(result.Errors) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i, tender := range result.Tenders {
		title := tender.Title
		if title == "" {
			title = tender.ID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, tender.RelevanceScore)
		cmd.Printf("      Source: %s", tender.SourceAPI)
		if tender.PublishDate != "" {
			cmd.Printf(" | Published: %s", tender.PublishDate)
		}
		if tender.Value > 0 {
			cmd.Printf(" | %.0f %s", tender.Value, tender.Currency)
		}
		cmd.Println()
		if tender.URL != "" {
			cmd.Printf("      %s\n", tender.URL)
		}
		cmd.Println()
	}

	for _, e := range result.Errors {
		cmd.Printf("  warning: %s: %s\n", e.API, e.Message)
	}
}
