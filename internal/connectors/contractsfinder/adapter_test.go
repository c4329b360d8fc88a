package contractsfinder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/procura-cli/internal/connectors"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

const testFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Contracts Finder Published Notices</title>
  <entry>
    <id>https://www.contractsfinder.service.gov.uk/Notice/abc-123</id>
    <title>Highway maintenance framework</title>
    <summary>Planned maintenance of the A-road network</summary>
    <link href="https://www.contractsfinder.service.gov.uk/Notice/abc-123"/>
    <published>2024-05-03T00:00:00Z</published>
    <author><name>National Highways</name></author>
  </entry>
  <entry>
    <id>https://www.contractsfinder.service.gov.uk/Notice/def-456</id>
    <title>Stationery supplies</title>
    <link href="https://www.contractsfinder.service.gov.uk/Notice/def-456"/>
    <published>2024-05-04T00:00:00Z</published>
  </entry>
</feed>`

func testAdapter(feedURL string) *Adapter {
	a := New()
	a.feedURL = feedURL
	a.client = connectors.NewClient(domain.SourceContractsFinder, 1000)
	return a
}

func TestValidate(t *testing.T) {
	// The public feed needs no credentials.
	assert.NoError(t, New().Validate())
}

func TestSearch(t *testing.T) {
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	notices, err := testAdapter(srv.URL).Search(context.Background(), domain.SearchParams{
		Term:     "maintenance",
		DateFrom: "2024-04-01",
		DateTo:   "2024-05-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "maintenance", gotQuery.Get("keywords"))
	assert.Equal(t, "2024-04-01", gotQuery.Get("publishedFrom"))
	assert.Equal(t, "2024-05-10", gotQuery.Get("publishedTo"))

	require.Len(t, notices, 2)
	assert.Equal(t, domain.SourceContractsFinder, notices[0].API)

	var record map[string]any
	require.NoError(t, json.Unmarshal(notices[0].Data, &record))
	assert.Equal(t, "abc-123", record["id"])
	assert.Equal(t, "Highway maintenance framework", record["title"])
	assert.Equal(t, "Planned maintenance of the A-road network", record["description"])
	assert.Equal(t, "National Highways", record["organisationName"])
	assert.Equal(t, "2024-05-03T00:00:00Z", record["publishedDate"])
	assert.Equal(t, "https://www.contractsfinder.service.gov.uk/Notice/abc-123", record["uri"])

	// Entries without an author stay without an organisation.
	record = nil
	require.NoError(t, json.Unmarshal(notices[1].Data, &record))
	assert.Equal(t, "def-456", record["id"])
	assert.NotContains(t, record, "organisationName")
}

func TestSearch_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	_, err := testAdapter(srv.URL).Search(context.Background(), domain.SearchParams{
		Term: "x", DateFrom: "2024-04-01", DateTo: "2024-05-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse feed")
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testAdapter(srv.URL).Search(context.Background(), domain.SearchParams{
		Term: "x", DateFrom: "2024-04-01", DateTo: "2024-05-01",
	})
	require.Error(t, err)

	var apiErr *connectors.APIError
	assert.ErrorAs(t, err, &apiErr)
}
