// Package contractsfinder queries the UK Contracts Finder published notices
// Atom feed. The feed needs no credentials.
package contractsfinder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/procura-cli/internal/connectors"
	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// DefaultFeedURL is the Contracts Finder published notices Atom feed.
const DefaultFeedURL = "https://www.contractsfinder.service.gov.uk/Published/Notices/Atom"

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Adapter pulls the Contracts Finder Atom feed and re-encodes each entry as
// a raw notice record. The feed carries no value or deadline for most notice
// types; those fields stay absent.
type Adapter struct {
	feedURL string
	client  *connectors.Client
	parser  *gofeed.Parser
}

// New creates a Contracts Finder adapter.
func New() *Adapter {
	return &Adapter{
		feedURL: DefaultFeedURL,
		client:  connectors.NewClient(domain.SourceContractsFinder, connectors.DefaultRequestRate),
		parser:  gofeed.NewParser(),
	}
}

// API returns the source this adapter queries.
func (a *Adapter) API() domain.SourceAPI {
	return domain.SourceContractsFinder
}

// Validate checks that the adapter is configured for use.
// The public feed never needs credentials.
func (a *Adapter) Validate() error {
	return nil
}

// feedRecord is the JSON shape handed to the normaliser for one feed entry.
type feedRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Organisation string `json:"organisationName,omitempty"`
	Published    string `json:"publishedDate,omitempty"`
	Deadline     string `json:"deadlineDate,omitempty"`
	URI          string `json:"uri,omitempty"`
}

// Search pulls the feed filtered by keyword and publication window.
func (a *Adapter) Search(ctx context.Context, params domain.SearchParams) ([]domain.RawNotice, error) {
	query := url.Values{}
	query.Set("keywords", params.Term)
	query.Set("publishedFrom", params.DateFrom)
	query.Set("publishedTo", params.DateTo)

	req, err := http.NewRequest(http.MethodGet, a.feedURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("contracts finder: build request: %w", err)
	}
	req.Header.Set("Accept", "application/atom+xml")

	body, err := a.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	feed, err := a.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contracts finder: parse feed: %w", err)
	}

	notices := make([]domain.RawNotice, 0, len(feed.Items))
	for _, item := range feed.Items {
		record := feedRecord{
			ID:           noticeID(item),
			Title:        strings.TrimSpace(item.Title),
			Description:  strings.TrimSpace(item.Description),
			Organisation: extensionValue(item, "organisationName"),
			Published:    item.Published,
			Deadline:     extensionValue(item, "deadlineDate"),
			URI:          strings.TrimSpace(item.Link),
		}
		if record.Organisation == "" && item.Author != nil {
			record.Organisation = strings.TrimSpace(item.Author.Name)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("contracts finder: encode entry: %w", err)
		}
		notices = append(notices, domain.RawNotice{API: domain.SourceContractsFinder, Data: data})
	}
	return notices, nil
}

// noticeID extracts the notice identifier from the entry GUID, which is the
// notice page URL. Falls back to the raw GUID.
func noticeID(item *gofeed.Item) string {
	guid := strings.TrimSpace(item.GUID)
	if guid == "" {
		guid = strings.TrimSpace(item.Link)
	}
	if idx := strings.LastIndex(strings.TrimRight(guid, "/"), "/"); idx >= 0 {
		return strings.TrimRight(guid, "/")[idx+1:]
	}
	return guid
}

// extensionValue finds the first extension element with the given local name
// under any namespace prefix.
func extensionValue(item *gofeed.Item, name string) string {
	for _, byName := range item.Extensions {
		for _, exts := range byName {
			for _, ext := range exts {
				if ext.Name == name {
					return strings.TrimSpace(ext.Value)
				}
			}
		}
	}
	return ""
}
