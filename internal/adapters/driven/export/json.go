package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// Ensure JSONWriter implements the interface.
var _ driven.ResultWriter = (*JSONWriter)(nil)

// JSONWriter writes the complete consolidated result as pretty-printed JSON.
type JSONWriter struct{}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Extension returns the file extension this writer produces.
func (w *JSONWriter) Extension() string {
	return "json"
}

// Write serialises the result to the given path.
func (w *JSONWriter) Write(result *domain.ConsolidatedResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
