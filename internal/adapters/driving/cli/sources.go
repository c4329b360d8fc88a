package cli

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported sources and their credential status",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	cmd.Println("Sources:")
	for _, adapter := range sourceAdapters {
		status := "ready"
		if err := adapter.Validate(); err != nil {
			status = "missing credentials"
		}
		cmd.Printf("  %-17s %s\n", adapter.API(), status)
	}
	return nil
}
