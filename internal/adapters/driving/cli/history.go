package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [search-id]",
	Short: "Show past search runs",
	Long: `Lists recent search runs recorded in the local history database.
With a search ID, prints the stored result of that run as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if runStore == nil {
		return errors.New("run history is unavailable")
	}

	ctx := context.Background()

	if len(args) == 1 {
		return showRun(ctx, cmd, args[0])
	}
	return listRuns(ctx, cmd)
}

func showRun(ctx context.Context, cmd *cobra.Command, searchID string) error {
	summary, err := runStore.Get(ctx, searchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no run with search ID %q", searchID)
		}
		return fmt.Errorf("loading run: %w", err)
	}

	data, err := json.MarshalIndent(summary.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func listRuns(ctx context.Context, cmd *cobra.Command) error {
	summaries, err := runStore.List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Println("Recent runs:")
	for _, s := range summaries {
		sources := make([]string, len(s.Params.Sources))
		for i, src := range s.Params.Sources {
			sources[i] = string(src)
		}

		cmd.Printf("  %s  %q  %s to %s  (%d results, %d errors)\n",
			s.SearchID, s.Params.Term, s.Params.DateFrom, s.Params.DateTo,
			s.TotalCount, s.ErrorCount)
		cmd.Printf("      sources: %s\n", strings.Join(sources, ", "))
	}
	return nil
}
