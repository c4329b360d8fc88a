package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// maxCountryRows caps the country distribution section.
const maxCountryRows = 10

// Ensure MarkdownWriter implements the interface.
var _ driven.ResultWriter = (*MarkdownWriter)(nil)

// MarkdownWriter writes a human-readable summary of the run.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a new Markdown writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Extension returns the file extension this writer produces.
func (w *MarkdownWriter) Extension() string {
	return "md"
}

// Write serialises the result to the given path.
func (w *MarkdownWriter) Write(result *domain.ConsolidatedResult, path string) error {
	var b strings.Builder

	meta := result.Metadata
	stats := result.Statistics

	sources := make([]string, len(meta.Sources))
	for i, s := range meta.Sources {
		sources[i] = string(s)
	}

	fmt.Fprintf(&b, "# Procurement Search Summary\n\n")
	fmt.Fprintf(&b, "## Search Parameters\n")
	fmt.Fprintf(&b, "- **Search term:** %s\n", meta.Term)
	fmt.Fprintf(&b, "- **Sources:** %s\n", strings.Join(sources, ", "))
	fmt.Fprintf(&b, "- **Period:** %s to %s\n", meta.DateFrom, meta.DateTo)
	fmt.Fprintf(&b, "- **Minimum contract value:** %d\n", meta.MinValue)
	fmt.Fprintf(&b, "- **Executed:** %s\n\n", meta.ExecutedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## Results\n")
	fmt.Fprintf(&b, "- **Total:** %d notices found\n\n", stats.TotalCount)

	fmt.Fprintf(&b, "### Source Breakdown\n")
	for _, source := range meta.Sources {
		if count, ok := stats.APIBreakdown[source]; ok {
			fmt.Fprintf(&b, "- **%s:** %d results\n", strings.ToUpper(string(source)), count)
		}
	}

	if vs := stats.ValueStatistics; vs != nil {
		fmt.Fprintf(&b, "\n### Value Statistics\n")
		fmt.Fprintf(&b, "- **Total value:** %.2f\n", vs.Total)
		fmt.Fprintf(&b, "- **Average value:** %.2f\n", vs.Average)
		fmt.Fprintf(&b, "- **Highest value:** %.2f\n", vs.Max)
		fmt.Fprintf(&b, "- **Lowest value:** %.2f\n", vs.Min)
	}

	if len(stats.CountryBreakdown) > 0 {
		fmt.Fprintf(&b, "\n### Country Distribution\n")
		rows := stats.CountryBreakdown
		if len(rows) > maxCountryRows {
			rows = rows[:maxCountryRows]
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "- **%s:** %d notices\n", row.Country, row.Count)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\n### Errors and Warnings\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "- **%s:** %s\n", e.API, e.Message)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
