package export

import (
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// maxReportTenders caps how many tenders the Word report lists in full.
const maxReportTenders = 20

// Ensure DocxWriter implements the interface.
var _ driven.ResultWriter = (*DocxWriter)(nil)

// DocxWriter writes a Word report of the run summary and top results.
type DocxWriter struct{}

// NewDocxWriter creates a new Word report writer.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// Extension returns the file extension this writer produces.
func (w *DocxWriter) Extension() string {
	return "docx"
}

// Write serialises the result to the given path.
func (w *DocxWriter) Write(result *domain.ConsolidatedResult, path string) error {
	f := docx.NewFile()
	meta := result.Metadata
	stats := result.Statistics

	titleP := f.AddParagraph()
	titleRun := titleP.AddText("Procurement Search Report")
	titleRun.Size(20)
	f.AddParagraph() // Spacer

	sources := make([]string, len(meta.Sources))
	for i, s := range meta.Sources {
		sources[i] = string(s)
	}

	p := f.AddParagraph()
	run := p.AddText(fmt.Sprintf("Search term: %s | Sources: %s", meta.Term, strings.Join(sources, ", ")))
	run.Size(11)

	p = f.AddParagraph()
	run = p.AddText(fmt.Sprintf("Period: %s to %s | Minimum value: %d", meta.DateFrom, meta.DateTo, meta.MinValue))
	run.Size(11)

	p = f.AddParagraph()
	run = p.AddText(fmt.Sprintf("Executed: %s | Total: %d notices",
		meta.ExecutedAt.Format("2006-01-02 15:04:05 MST"), stats.TotalCount))
	run.Size(11)

	if vs := stats.ValueStatistics; vs != nil {
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Values: total %.2f, average %.2f, highest %.2f, lowest %.2f",
			vs.Total, vs.Average, vs.Max, vs.Min))
		run.Size(11)
	}

	if len(result.Errors) > 0 {
		f.AddParagraph() // Spacer
		p = f.AddParagraph()
		run = p.AddText("Source errors:")
		run.Size(12)
		for _, e := range result.Errors {
			p = f.AddParagraph()
			run = p.AddText(fmt.Sprintf("- %s: %s", e.API, e.Message))
			run.Size(10)
			run.Color("808080")
		}
	}

	f.AddParagraph() // Spacer
	f.AddParagraph().AddText("--------------------------------------------------")
	f.AddParagraph() // Spacer

	tenders := result.Tenders
	if len(tenders) > maxReportTenders {
		tenders = tenders[:maxReportTenders]
	}

	for _, tender := range tenders {
		// Title
		p = f.AddParagraph()
		run = p.AddText(tender.Title)
		run.Size(14)

		// Metadata
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Source: %s | Published: %s | Value: %.0f %s | Relevance: %.2f",
			tender.SourceAPI, tender.PublishDate, tender.Value, tender.Currency, tender.RelevanceScore))
		run.Size(10)
		run.Color("808080")

		// URL
		if tender.URL != "" {
			p = f.AddParagraph()
			run = p.AddText(tender.URL)
			run.Size(10)
			run.Color("0000FF")
		}

		if tender.Organization != "" {
			f.AddParagraph().AddText(tender.Organization)
		}
		f.AddParagraph() // Spacer
	}

	return f.Save(path)
}
