// Package sam queries the US SAM.gov opportunities API.
package sam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/procura-cli/internal/connectors"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the SAM.gov opportunities search endpoint.
	DefaultBaseURL = "https://api.sam.gov/prod/opportunities/v2/search"

	// PageSize is the maximum result count per search request.
	PageSize = 100

	// noticeTypes restricts results to open solicitation notices.
	noticeTypes = "Presolicitation,Combined Synopsis/Solicitation,Solicitation"

	// samDateLayout is the MM/dd/yyyy format the API requires for the
	// posted date window.
	samDateLayout = "01/02/2006"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter queries SAM.gov. The API key travels as a query parameter, not a
// header. SAM.gov has no server-side value filter; minimum value is not
// applied at this source.
type Adapter struct {
	apiKey  string
	baseURL string
	client  *connectors.Client
}

// New creates a SAM.gov adapter with the given API key.
func New(apiKey string) *Adapter {
	return &Adapter{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  connectors.NewClient(domain.SourceSAM, connectors.DefaultRequestRate),
	}
}

// API returns the source this adapter queries.
func (a *Adapter) API() domain.SourceAPI {
	return domain.SourceSAM
}

// Validate checks that the adapter is configured for use.
func (a *Adapter) Validate() error {
	if a.apiKey == "" {
		return fmt.Errorf("sam: %w", domain.ErrMissingCredentials)
	}
	return nil
}

// searchResponse is the subset of the search response the adapter consumes.
type searchResponse struct {
	OpportunitiesData []json.RawMessage `json:"opportunitiesData"`
}

// Search queries SAM.gov and returns the raw opportunity records.
func (a *Adapter) Search(ctx context.Context, params domain.SearchParams) ([]domain.RawNotice, error) {
	query := url.Values{}
	query.Set("api_key", a.apiKey)
	query.Set("keywords", params.Term)
	query.Set("postedFrom", samDate(params.DateFrom))
	query.Set("postedTo", samDate(params.DateTo))
	query.Set("noticeType", noticeTypes)
	query.Set("limit", strconv.Itoa(PageSize))

	req, err := http.NewRequest(http.MethodGet, a.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sam: build request: %w", err)
	}

	var resp searchResponse
	if err := a.client.DoJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	notices := make([]domain.RawNotice, 0, len(resp.OpportunitiesData))
	for _, opportunity := range resp.OpportunitiesData {
		notices = append(notices, domain.RawNotice{API: domain.SourceSAM, Data: opportunity})
	}
	return notices, nil
}

// samDate converts a "YYYY-MM-DD" date to the MM/dd/yyyy form SAM.gov
// expects. Unparseable input passes through unchanged and lets the API
// report the problem.
func samDate(iso string) string {
	t, err := time.Parse(domain.ISODate, iso)
	if err != nil {
		return iso
	}
	return t.Format(samDateLayout)
}
