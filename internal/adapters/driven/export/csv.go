package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// csvHeader is the fixed column order of the tender table.
var csvHeader = []string{
	"id", "title", "description", "organization", "value", "currency",
	"publish_date", "deadline", "country", "city", "url", "source_api",
	"relevance_score",
}

// Ensure CSVWriter implements the interface.
var _ driven.ResultWriter = (*CSVWriter)(nil)

// CSVWriter writes the consolidated tender sequence as a CSV table.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Extension returns the file extension this writer produces.
func (w *CSVWriter) Extension() string {
	return "csv"
}

// Write serialises the result to the given path.
func (w *CSVWriter) Write(result *domain.ConsolidatedResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tender := range result.Tenders {
		record := []string{
			tender.ID,
			tender.Title,
			tender.Description,
			tender.Organization,
			strconv.FormatFloat(tender.Value, 'f', -1, 64),
			tender.Currency,
			tender.PublishDate,
			tender.Deadline,
			tender.Country,
			tender.City,
			tender.URL,
			string(tender.SourceAPI),
			strconv.FormatFloat(tender.RelevanceScore, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
