package driven

import (
	"context"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// SourceAdapter queries one procurement notice API.
// Each source (TED, SAM.gov, OpenOpps, Contracts Finder) implements this
// interface. Adapters own transport concerns: authentication, pagination,
// rate limiting and timeouts all stay behind this boundary.
type SourceAdapter interface {
	// API returns the source identifier this adapter serves.
	API() domain.SourceAPI

	// Validate checks the adapter is properly configured.
	// Returns an error when required credentials are missing; a failed
	// validation surfaces as a per-source error entry, never a crash.
	Validate() error

	// Search queries the source with canonical parameters and returns the
	// raw, source-tagged records. The records keep the source's native
	// shape; normalisation happens downstream.
	Search(ctx context.Context, params domain.SearchParams) ([]domain.RawNotice, error)
}
