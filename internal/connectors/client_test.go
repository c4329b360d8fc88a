package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// testClient builds a client with a throttle high enough not to slow tests.
func testClient(source domain.SourceAPI) *Client {
	return NewClient(source, 1000)
}

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	body, err := testClient(domain.SourceTED).Do(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_DoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[1,2,3]}`))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	var out struct {
		Results []int `json:"results"`
	}
	require.NoError(t, testClient(domain.SourceSAM).DoJSON(context.Background(), req, &out))
	assert.Equal(t, []int{1, 2, 3}, out.Results)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such\nnotice"))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = testClient(domain.SourceTED).Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.SourceTED, apiErr.Source)
	assert.Equal(t, 404, apiErr.StatusCode)
	// Error bodies are collapsed to a single line.
	assert.Equal(t, "no such notice", apiErr.Message)
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = testClient(domain.SourceSAM).Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsRateLimited(err))
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRetryAfter, "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = testClient(domain.SourceOpenOpps).Do(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rateLimitErr *RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)
	assert.Equal(t, domain.SourceOpenOpps, rateLimitErr.Source)
	assert.WithinDuration(t, time.Now().Add(60*time.Second), rateLimitErr.ResetAt, 5*time.Second)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestClient_TracksQuotaFromHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRateRemaining, "42")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	client := testClient(domain.SourceTED)
	_, err = client.Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 42, client.RateLimiter().Remaining())
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = testClient(domain.SourceTED).Do(ctx, req)
	assert.Error(t, err)
}
