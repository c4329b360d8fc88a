// Package ted normalises Tenders Electronic Daily notice records.
//
// TED represents almost every field as an ordered list of values (one per
// notice language); the first element is authoritative.
package ted

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// rawNotice is the native TED search-result record. Field codes follow the
// TED expert search schema: ND notice id, TI title, PD publication date,
// TD deadline, VA value, CU currency, CY country, AN authority name.
type rawNotice struct {
	ND []string             `json:"ND"`
	TI []string             `json:"TI"`
	PD []string             `json:"PD"`
	TD []string             `json:"TD"`
	VA []normalisers.Amount `json:"VA"`
	CU []string             `json:"CU"`
	CY []string             `json:"CY"`
	AN []string             `json:"AN"`
}

// Normaliser converts TED records to canonical tenders.
type Normaliser struct{}

// New creates a new TED normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// API returns the source this normaliser handles.
func (n *Normaliser) API() domain.SourceAPI {
	return domain.SourceTED
}

// Normalise maps one TED record to a Tender. Individual field failures
// degrade to defaults; only an undecodable payload is an error.
func (n *Normaliser) Normalise(raw domain.RawNotice) (domain.Tender, error) {
	var record rawNotice
	if err := json.Unmarshal(raw.Data, &record); err != nil {
		return domain.Tender{}, fmt.Errorf("decode ted record: %w", err)
	}

	id := normalisers.First(record.ND)

	var value float64
	if len(record.VA) > 0 {
		value = float64(record.VA[0])
	}

	currency := normalisers.First(record.CU)
	if currency == "" {
		currency = domain.SourceTED.DefaultCurrency()
	}

	return domain.Tender{
		ID:           id,
		Title:        normalisers.First(record.TI),
		Organization: normalisers.First(record.AN),
		Value:        value,
		Currency:     currency,
		PublishDate:  normalisers.ParseDate(normalisers.First(record.PD)),
		Deadline:     normalisers.ParseDate(normalisers.First(record.TD)),
		Country:      normalisers.First(record.CY),
		URL:          domain.SourceTED.NoticeURL(id),
	}, nil
}
