// Package contractsfinder normalises UK Contracts Finder notice records.
package contractsfinder

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// rawNotice is the Contracts Finder record as emitted by the feed adapter.
// The Atom feed carries no organisation or value for some notice types;
// those fields simply stay empty.
type rawNotice struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Organisation string             `json:"organisationName"`
	ValueLow     normalisers.Amount `json:"valueLow"`
	Published    string             `json:"publishedDate"`
	Deadline     string             `json:"deadlineDate"`
	Region       string             `json:"region"`
	URI          string             `json:"uri"`
}

// Normaliser converts Contracts Finder records to canonical tenders.
type Normaliser struct{}

// New creates a new Contracts Finder normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// API returns the source this normaliser handles.
func (n *Normaliser) API() domain.SourceAPI {
	return domain.SourceContractsFinder
}

// Normalise maps one Contracts Finder notice to a Tender.
func (n *Normaliser) Normalise(raw domain.RawNotice) (domain.Tender, error) {
	var record rawNotice
	if err := json.Unmarshal(raw.Data, &record); err != nil {
		return domain.Tender{}, fmt.Errorf("decode contracts finder record: %w", err)
	}

	url := record.URI
	if url == "" {
		url = domain.SourceContractsFinder.NoticeURL(record.ID)
	}

	return domain.Tender{
		ID:           record.ID,
		Title:        record.Title,
		Description:  record.Description,
		Organization: record.Organisation,
		Value:        float64(record.ValueLow),
		Currency:     domain.SourceContractsFinder.DefaultCurrency(),
		PublishDate:  normalisers.ParseDate(record.Published),
		Deadline:     normalisers.ParseDate(record.Deadline),
		Country:      "GB",
		City:         record.Region,
		URL:          url,
	}, nil
}
