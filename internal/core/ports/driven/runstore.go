package driven

import (
	"context"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// RunSummary is a stored record of one consolidated search run.
type RunSummary struct {
	// SearchID uniquely identifies the run.
	SearchID string

	// Params are the parameters the run was executed with.
	Params domain.SearchParams

	// TotalCount is the size of the consolidated tender sequence.
	TotalCount int

	// ErrorCount is the number of per-source failures.
	ErrorCount int

	// Result is the full consolidated result. Populated by Get,
	// omitted by List.
	Result *domain.ConsolidatedResult
}

// RunStore persists search-run history.
type RunStore interface {
	// Save records a completed run.
	Save(ctx context.Context, result *domain.ConsolidatedResult) error

	// Get retrieves a run with its full result by search ID.
	// Returns domain.ErrNotFound when the run does not exist.
	Get(ctx context.Context, searchID string) (*RunSummary, error)

	// List returns the most recent runs, newest first, without results.
	List(ctx context.Context, limit int) ([]RunSummary, error)
}
