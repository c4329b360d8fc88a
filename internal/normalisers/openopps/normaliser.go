// Package openopps normalises OpenOpps OCDS release records.
package openopps

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// rawRelease is the native OpenOpps record, an OCDS release flattened by
// their DRF API. The buyer and value are nested objects.
type rawRelease struct {
	OCID        string `json:"ocid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"releasedate"`
	Deadline    string `json:"deadline"`
	Country     string `json:"country"`
	Locality    string `json:"locality"`
	URI         string `json:"uri"`

	Buyer struct {
		Name string `json:"name"`
	} `json:"buyer"`

	Value struct {
		Amount   normalisers.Amount `json:"amount"`
		Currency string             `json:"currency"`
	} `json:"value"`
}

// Normaliser converts OpenOpps records to canonical tenders.
type Normaliser struct{}

// New creates a new OpenOpps normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// API returns the source this normaliser handles.
func (n *Normaliser) API() domain.SourceAPI {
	return domain.SourceOpenOpps
}

// Normalise maps one OpenOpps release to a Tender.
func (n *Normaliser) Normalise(raw domain.RawNotice) (domain.Tender, error) {
	var record rawRelease
	if err := json.Unmarshal(raw.Data, &record); err != nil {
		return domain.Tender{}, fmt.Errorf("decode openopps record: %w", err)
	}

	currency := record.Value.Currency
	if currency == "" {
		currency = domain.SourceOpenOpps.DefaultCurrency()
	}

	url := record.URI
	if url == "" {
		url = domain.SourceOpenOpps.NoticeURL(record.OCID)
	}

	return domain.Tender{
		ID:           record.OCID,
		Title:        record.Title,
		Description:  record.Description,
		Organization: record.Buyer.Name,
		Value:        float64(record.Value.Amount),
		Currency:     currency,
		PublishDate:  normalisers.ParseDate(record.ReleaseDate),
		Deadline:     normalisers.ParseDate(record.Deadline),
		Country:      record.Country,
		City:         record.Locality,
		URL:          url,
	}, nil
}
