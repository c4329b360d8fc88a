package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// output pairs a writer with the filename prefix its artefact uses.
type output struct {
	prefix string
	writer driven.ResultWriter
}

// Exporter writes the full artefact set for one run: the result data as JSON
// and CSV, the run summary as Markdown and Word.
type Exporter struct {
	dir     string
	outputs []output
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{
		dir: dir,
		outputs: []output{
			{"search_results_", NewJSONWriter()},
			{"search_results_", NewCSVWriter()},
			{"search_summary_", NewMarkdownWriter()},
			{"search_summary_", NewDocxWriter()},
		},
	}
}

// WriteAll writes every artefact for the result and returns the paths
// written. The first writer failure aborts the remaining formats.
func (e *Exporter) WriteAll(result *domain.ConsolidatedResult) ([]string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	paths := make([]string, 0, len(e.outputs))
	for _, o := range e.outputs {
		path := filepath.Join(e.dir, o.prefix+result.Metadata.SearchID+"."+o.writer.Extension())
		if err := o.writer.Write(result, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
