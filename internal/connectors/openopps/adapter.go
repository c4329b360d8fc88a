// Package openopps queries the OpenOpps OCDS tender aggregator API.
package openopps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/custodia-labs/procura-cli/internal/connectors"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the OpenOpps API root.
	DefaultBaseURL = "https://api.openopps.com"

	// PageSize is the maximum result count per search request.
	PageSize = 100
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter queries OpenOpps. The API authenticates with username/password
// exchanged for a short-lived JWT; the token is fetched lazily on the first
// search and reused for the rest of the run.
type Adapter struct {
	username string
	password string
	baseURL  string
	client   *connectors.Client

	mu    sync.Mutex
	token string
}

// New creates an OpenOpps adapter with the given credentials.
func New(username, password string) *Adapter {
	return &Adapter{
		username: username,
		password: password,
		baseURL:  DefaultBaseURL,
		client:   connectors.NewClient(domain.SourceOpenOpps, connectors.DefaultRequestRate),
	}
}

// API returns the source this adapter queries.
func (a *Adapter) API() domain.SourceAPI {
	return domain.SourceOpenOpps
}

// Validate checks that the adapter is configured for use.
func (a *Adapter) Validate() error {
	if a.username == "" || a.password == "" {
		return fmt.Errorf("openopps: %w", domain.ErrMissingCredentials)
	}
	return nil
}

// ensureToken exchanges the credentials for a JWT if none is cached yet.
func (a *Adapter) ensureToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" {
		return a.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"username": a.username,
		"password": a.password,
	})
	if err != nil {
		return "", fmt.Errorf("openopps: encode credentials: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.baseURL+"/api/api-token-auth/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openopps: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		Token string `json:"token"`
	}
	if err := a.client.DoJSON(ctx, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("openopps: token response carried no token")
	}

	a.token = resp.Token
	return a.token, nil
}

// searchResponse is the subset of the paginated tender listing the adapter
// consumes.
type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}

// Search queries OpenOpps and returns the raw release records.
func (a *Adapter) Search(ctx context.Context, params domain.SearchParams) ([]domain.RawNotice, error) {
	token, err := a.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("search", params.Term)
	query.Set("releasedate__gte", params.DateFrom)
	query.Set("releasedate__lte", params.DateTo)
	query.Set("min_amount", strconv.Itoa(params.MinValue))
	query.Set("page_size", strconv.Itoa(PageSize))

	req, err := http.NewRequest(http.MethodGet, a.baseURL+"/api/tenders/?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openopps: build request: %w", err)
	}
	req.Header.Set("Authorization", "JWT "+token)

	var resp searchResponse
	if err := a.client.DoJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	notices := make([]domain.RawNotice, 0, len(resp.Results))
	for _, release := range resp.Results {
		notices = append(notices, domain.RawNotice{API: domain.SourceOpenOpps, Data: release})
	}
	return notices, nil
}
