package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [term]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search procurement notices across all sources", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasSourcesFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("sources")
	require.NotNil(t, flag, "sources flag should exist")
	assert.Equal(t, "s", flag.Shorthand)
}

func TestSearchCmd_HasOutFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("out")
	require.NotNil(t, flag, "out flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "search_results", flag.DefValue)
}

func TestSearchCmd_PrintsSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--no-export", "medical equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `Found 1 notices for "medical equipment"`)
	assert.Contains(t, buf.String(), "Medical equipment supply")
	assert.Contains(t, buf.String(), "(0.80)")
	assert.Contains(t, buf.String(), "250000 EUR")
	assert.Contains(t, buf.String(), "https://ted.europa.eu/notice/ted-1")
}

func TestSearchCmd_PassesParamsToCoordinator(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := coordinator.(*mockCoordinator)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"search", "--no-export",
		"--sources", "ted,sam",
		"--from", "2024-04-01",
		"--to", "2024-05-01",
		"--min-value", "50000",
		"medical equipment",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "medical equipment", mock.lastParams.Term)
	assert.Equal(t, "2024-04-01", mock.lastParams.DateFrom)
	assert.Equal(t, "2024-05-01", mock.lastParams.DateTo)
	assert.Equal(t, 50000, mock.lastParams.MinValue)
	assert.Equal(t, []domain.SourceAPI{domain.SourceTED, domain.SourceSAM}, mock.lastParams.Sources)
}

func TestSearchCmd_ConfiguredDefaultsApply(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := coordinator.(*mockCoordinator)
	configStore = &mockConfigStore{values: map[string]any{
		"search.default_sources": []string{"ted", "contracts_finder"},
		"search.date_from":       "2024-01-01",
		"search.date_to":         "2024-02-01",
		"search.min_value":       10000,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--no-export", "medical equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []domain.SourceAPI{domain.SourceTED, domain.SourceContractsFinder}, mock.lastParams.Sources)
	assert.Equal(t, "2024-01-01", mock.lastParams.DateFrom)
	assert.Equal(t, "2024-02-01", mock.lastParams.DateTo)
	assert.Equal(t, 10000, mock.lastParams.MinValue)
}

func TestSearchCmd_FlagsOverrideConfiguredDefaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := coordinator.(*mockCoordinator)
	configStore = &mockConfigStore{values: map[string]any{
		"search.default_sources": []string{"ted"},
		"search.date_from":       "2024-01-01",
		"search.min_value":       10000,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"search", "--no-export",
		"--sources", "sam",
		"--from", "2024-03-01",
		"--min-value", "0",
		"medical equipment",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []domain.SourceAPI{domain.SourceSAM}, mock.lastParams.Sources)
	assert.Equal(t, "2024-03-01", mock.lastParams.DateFrom)
	assert.Equal(t, 0, mock.lastParams.MinValue)
}

func TestSearchCmd_ConfiguredExportDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := filepath.Join(t.TempDir(), "configured")
	configStore = &mockConfigStore{values: map[string]any{
		"export.dir": dir,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "medical equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--no-export", "--json", "medical equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"search_metadata"`)
	assert.Contains(t, buf.String(), `"consolidated_results"`)
	assert.Contains(t, buf.String(), `"run-0001"`)
}

func TestSearchCmd_RejectsUnknownSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--no-export", "--sources", "ebay", "laptops"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestSearchCmd_CoordinatorError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	coordinator = &mockCoordinator{err: assert.AnError}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--no-export", "laptops"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSearchCmd_ExportsResultFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := filepath.Join(t.TempDir(), "out")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--out", dir, "medical equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Exported:")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestOutputResultSummary_NoResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	outputResultSummary(rootCmd, &domain.ConsolidatedResult{
		Metadata: domain.SearchMetadata{Term: "nothing"},
	})

	assert.Contains(t, buf.String(), "No results found.")
}

func TestOutputResultSummary_UntitledTenderFallsBackToID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	outputResultSummary(rootCmd, &domain.ConsolidatedResult{
		Metadata:   domain.SearchMetadata{Term: "laptops"},
		Tenders:    []domain.Tender{{ID: "sam-42", SourceAPI: domain.SourceSAM}},
		Statistics: domain.Statistics{TotalCount: 1},
	})

	assert.Contains(t, buf.String(), "sam-42")
}

func TestOutputResultSummary_PrintsWarnings(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	outputResultSummary(rootCmd, &domain.ConsolidatedResult{
		Metadata:   domain.SearchMetadata{Term: "laptops"},
		Statistics: domain.Statistics{TotalCount: 0},
		Errors: []domain.SourceError{
			{API: domain.SourceOpenOpps, Message: "authentication failed"},
		},
	})

	assert.Contains(t, buf.String(), "warning: openopps: authentication failed")
}
