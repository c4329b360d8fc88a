// Package sam normalises SAM.gov opportunity records.
package sam

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// rawOpportunity is the native SAM.gov opportunities record. Unlike TED the
// fields are scalar, but the award value and place of performance are
// nested objects that are frequently absent.
type rawOpportunity struct {
	NoticeID         string `json:"noticeId"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Department       string `json:"department"`
	PostedDate       string `json:"postedDate"`
	ResponseDeadLine string `json:"responseDeadLine"`
	SolicitationURL  string `json:"solicitationURL"`

	Award struct {
		Amount normalisers.Amount `json:"amount"`
	} `json:"award"`

	PlaceOfPerformance struct {
		CountryCode string `json:"countryCode"`
		City        struct {
			Name string `json:"name"`
		} `json:"city"`
	} `json:"placeOfPerformance"`
}

// Normaliser converts SAM.gov records to canonical tenders.
type Normaliser struct{}

// New creates a new SAM.gov normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// API returns the source this normaliser handles.
func (n *Normaliser) API() domain.SourceAPI {
	return domain.SourceSAM
}

// Normalise maps one SAM.gov record to a Tender.
func (n *Normaliser) Normalise(raw domain.RawNotice) (domain.Tender, error) {
	var record rawOpportunity
	if err := json.Unmarshal(raw.Data, &record); err != nil {
		return domain.Tender{}, fmt.Errorf("decode sam record: %w", err)
	}

	// SAM.gov quotes everything in USD; the API carries no currency field.
	url := record.SolicitationURL
	if url == "" {
		url = domain.SourceSAM.NoticeURL(record.NoticeID)
	}

	return domain.Tender{
		ID:           record.NoticeID,
		Title:        record.Title,
		Description:  record.Description,
		Organization: record.Department,
		Value:        float64(record.Award.Amount),
		Currency:     domain.SourceSAM.DefaultCurrency(),
		PublishDate:  normalisers.ParseDate(record.PostedDate),
		Deadline:     normalisers.ParseDate(record.ResponseDeadLine),
		Country:      record.PlaceOfPerformance.CountryCode,
		City:         record.PlaceOfPerformance.City.Name,
		URL:          url,
	}, nil
}
