// Package ted queries the EU Tenders Electronic Daily notice search API.
package ted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/procura-cli/internal/connectors"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the TED API root.
	DefaultBaseURL = "https://ted.europa.eu/api/v3.0"

	// PageSize is the maximum result count per search request.
	PageSize = 100
)

// resultFields are the notice fields requested from the expert search.
var resultFields = []string{"ND", "TI", "PD", "TD", "VA", "CU", "CY", "AN"}

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter queries TED via its expert search endpoint.
type Adapter struct {
	apiKey  string
	baseURL string
	client  *connectors.Client
}

// New creates a TED adapter with the given API key.
func New(apiKey string) *Adapter {
	return &Adapter{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  connectors.NewClient(domain.SourceTED, connectors.DefaultRequestRate),
	}
}

// API returns the source this adapter queries.
func (a *Adapter) API() domain.SourceAPI {
	return domain.SourceTED
}

// Validate checks that the adapter is configured for use.
func (a *Adapter) Validate() error {
	if a.apiKey == "" {
		return fmt.Errorf("ted: %w", domain.ErrMissingCredentials)
	}
	return nil
}

// searchRequest is the expert search payload.
type searchRequest struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
	Limit  int      `json:"limit"`
	Page   int      `json:"page"`
}

// searchResponse is the subset of the search response the adapter consumes.
type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}

// Search queries TED and returns the raw notice records.
func (a *Adapter) Search(ctx context.Context, params domain.SearchParams) ([]domain.RawNotice, error) {
	payload := searchRequest{
		Query:  expertQuery(params),
		Fields: resultFields,
		Limit:  PageSize,
		Page:   1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ted: encode query: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.baseURL+"/notices/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ted: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var resp searchResponse
	if err := a.client.DoJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	notices := make([]domain.RawNotice, 0, len(resp.Results))
	for _, result := range resp.Results {
		notices = append(notices, domain.RawNotice{API: domain.SourceTED, Data: result})
	}
	return notices, nil
}

// expertQuery builds the TED expert search expression: term match on notice
// id or title, publication date window, minimum value, contract notices only.
func expertQuery(params domain.SearchParams) string {
	return fmt.Sprintf(
		"(ND=[%s] OR TI=[%s]) AND PD=[%s TO %s] AND VA>=[%d] AND DS=[CONTRACT_NOTICE]",
		params.Term, params.Term,
		params.DateFrom, params.DateTo,
		params.MinValue,
	)
}
