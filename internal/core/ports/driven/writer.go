package driven

import (
	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// ResultWriter serialises a consolidated result to one output format.
// Implementations exist for JSON, CSV, Markdown and Word reports.
type ResultWriter interface {
	// Extension returns the file extension this writer produces,
	// without the leading dot (e.g. "json", "csv").
	Extension() string

	// Write serialises the result to the given path.
	Write(result *domain.ConsolidatedResult, path string) error
}
