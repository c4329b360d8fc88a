package driving

import (
	"context"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// SearchCoordinator runs a consolidated search across the requested
// procurement APIs and returns the merged, deduplicated and scored result.
type SearchCoordinator interface {
	// Run executes one consolidated search. Configuration errors (empty
	// term, unknown source) are fatal; per-source failures are collected
	// in the result's error list and never abort the run.
	Run(ctx context.Context, params domain.SearchParams) (*domain.ConsolidatedResult, error)
}
