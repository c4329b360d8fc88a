package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// mockCoordinator returns a canned result and records the params it was
// called with.
type mockCoordinator struct {
	result     *domain.ConsolidatedResult
	err        error
	lastParams domain.SearchParams
}

func (m *mockCoordinator) Run(_ context.Context, params domain.SearchParams) (*domain.ConsolidatedResult, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockRunStore struct {
	summaries []driven.RunSummary
}

func (m *mockRunStore) Save(_ context.Context, _ *domain.ConsolidatedResult) error {
	return nil
}

func (m *mockRunStore) Get(_ context.Context, searchID string) (*driven.RunSummary, error) {
	for i := range m.summaries {
		if m.summaries[i].SearchID == searchID {
			return &m.summaries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRunStore) List(_ context.Context, limit int) ([]driven.RunSummary, error) {
	if limit > len(m.summaries) {
		limit = len(m.summaries)
	}
	out := make([]driven.RunSummary, limit)
	copy(out, m.summaries[:limit])
	for i := range out {
		out[i].Result = nil
	}
	return out, nil
}

// mockConfigStore serves canned values from a flat key map.
type mockConfigStore struct {
	values map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.values[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if n, ok := m.values[key].(int); ok {
		return n
	}
	return 0
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	if s, ok := m.values[key].([]string); ok {
		return s
	}
	return nil
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/config.toml"
}

type mockSourceAdapter struct {
	api         domain.SourceAPI
	validateErr error
}

func (m *mockSourceAdapter) API() domain.SourceAPI { return m.api }
func (m *mockSourceAdapter) Validate() error       { return m.validateErr }

func (m *mockSourceAdapter) Search(_ context.Context, _ domain.SearchParams) ([]domain.RawNotice, error) {
	return nil, nil
}

func sampleResult() *domain.ConsolidatedResult {
	return &domain.ConsolidatedResult{
		Metadata: domain.SearchMetadata{
			SearchID:   "run-0001",
			Term:       "medical equipment",
			Sources:    []domain.SourceAPI{domain.SourceTED},
			DateFrom:   "2024-04-01",
			DateTo:     "2024-05-01",
			ExecutedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		Tenders: []domain.Tender{
			{
				ID:             "ted-1",
				Title:          "Medical equipment supply",
				Organization:   "City Hospital",
				Value:          250000,
				Currency:       "EUR",
				PublishDate:    "2024-04-15",
				Country:        "DE",
				URL:            "https://ted.europa.eu/notice/ted-1",
				SourceAPI:      domain.SourceTED,
				RelevanceScore: 0.8,
			},
		},
		Statistics: domain.Statistics{
			TotalCount:   1,
			APIBreakdown: map[domain.SourceAPI]int{domain.SourceTED: 1},
		},
	}
}

// setupTestServices swaps the wired services for mocks and returns a
// cleanup function that restores the previous state and flag defaults.
func setupTestServices() func() {
	oldCoordinator := coordinator
	oldConfigStore := configStore
	oldRunStore := runStore
	oldAdapters := sourceAdapters

	coordinator = &mockCoordinator{result: sampleResult()}
	configStore = &mockConfigStore{}
	runStore = &mockRunStore{}
	sourceAdapters = []driven.SourceAdapter{
		&mockSourceAdapter{api: domain.SourceTED},
		&mockSourceAdapter{api: domain.SourceContractsFinder, validateErr: errors.New("no key")},
	}

	return func() {
		coordinator = oldCoordinator
		configStore = oldConfigStore
		runStore = oldRunStore
		sourceAdapters = oldAdapters

		searchSources = nil
		searchFrom = ""
		searchTo = ""
		searchMinValue = 0
		searchJSON = false
		searchOut = "search_results"
		searchNoExport = false
		historyLimit = 10

		// Changed state survives Execute calls, so clear it or a flag
		// set in one test would mask config defaults in the next.
		for _, name := range []string{"sources", "from", "to", "min-value", "json", "out", "no-export"} {
			searchCmd.Flags().Lookup(name).Changed = false
		}
		historyCmd.Flags().Lookup("limit").Changed = false
	}
}
