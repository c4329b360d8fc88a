package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driving"
	"github.com/custodia-labs/procura-cli/internal/logger"
)

// Ensure SearchCoordinator implements the interface.
var _ driving.SearchCoordinator = (*SearchCoordinator)(nil)

// SearchCoordinator fans a search out to the requested source adapters,
// consolidates their results through the normalise → deduplicate → score →
// sort pipeline and aggregates statistics over the final sequence.
type SearchCoordinator struct {
	adapters map[domain.SourceAPI]driven.SourceAdapter
	registry driven.NormaliserRegistry
	runStore driven.RunStore
}

// NewSearchCoordinator creates a coordinator over the given adapters.
// The runStore parameter is optional (can be nil); without it, run history
// is not recorded.
func NewSearchCoordinator(
	adapters []driven.SourceAdapter,
	registry driven.NormaliserRegistry,
	runStore driven.RunStore,
) *SearchCoordinator {
	byAPI := make(map[domain.SourceAPI]driven.SourceAdapter, len(adapters))
	for _, adapter := range adapters {
		byAPI[adapter.API()] = adapter
	}
	return &SearchCoordinator{
		adapters: byAPI,
		registry: registry,
		runStore: runStore,
	}
}

// Run executes one consolidated search across the requested sources.
//
// Configuration errors (empty term, unknown source, source without a
// configured adapter) are fatal and returned to the caller. Per-source
// search failures are recorded as error entries and never abort the run:
// a run always completes and returns a result, even when every source
// fails.
func (c *SearchCoordinator) Run(
	ctx context.Context, params domain.SearchParams,
) (*domain.ConsolidatedResult, error) {
	logger.Section("Search Run")

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("validate params: %w", err)
	}
	logger.Debug("Term: %q, window: %s to %s, min value: %d",
		params.Term, params.DateFrom, params.DateTo, params.MinValue)

	// Resolve adapters up front so an unconfigured source is a fatal
	// configuration error rather than a silent no-op.
	adapters := make([]driven.SourceAdapter, len(params.Sources))
	for i, api := range params.Sources {
		adapter, ok := c.adapters[api]
		if !ok {
			return nil, fmt.Errorf("%w: no adapter for %q", domain.ErrUnknownSource, api)
		}
		adapters[i] = adapter
	}

	metadata := domain.SearchMetadata{
		SearchID:   uuid.New().String(),
		Term:       params.Term,
		Sources:    params.Sources,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		MinValue:   params.MinValue,
		ExecutedAt: time.Now(),
	}

	// One task per source, run concurrently. Each task writes only its own
	// slot, so the merge order below stays the requested source order
	// regardless of completion order. The pipeline proceeds only after
	// every task reaches a terminal state.
	sourceResults := make([]domain.SourceResult, len(adapters))
	var wg sync.WaitGroup
	wg.Add(len(adapters))
	for i, adapter := range adapters {
		go func(slot int, adapter driven.SourceAdapter) {
			defer wg.Done()
			sourceResults[slot] = c.searchOne(ctx, adapter, params)
		}(i, adapter)
	}
	wg.Wait()

	// Merge successes in source order; collect failures.
	var merged []domain.Tender
	var sourceErrors []domain.SourceError
	for _, sr := range sourceResults {
		if !sr.Success {
			sourceErrors = append(sourceErrors, domain.SourceError{
				API:       sr.API,
				Message:   sr.Error,
				Timestamp: sr.SearchTime,
			})
			continue
		}
		logger.Info("Source %s: %d tenders (%d raw)", sr.API, sr.NormalisedCount, sr.RawCount)
		merged = append(merged, sr.Tenders...)
	}

	deduplicated := Deduplicate(merged)

	for i := range deduplicated {
		deduplicated[i].RelevanceScore = Score(deduplicated[i], params.Term)
	}
	sortByRelevance(deduplicated)

	result := &domain.ConsolidatedResult{
		Metadata:   metadata,
		Tenders:    deduplicated,
		Statistics: Aggregate(deduplicated),
		Errors:     sourceErrors,
	}
	logger.Info("Run %s complete: %d tenders, %d source errors",
		metadata.SearchID, len(deduplicated), len(sourceErrors))

	if c.runStore != nil {
		if err := c.runStore.Save(ctx, result); err != nil {
			logger.Warn("Failed to record run %s: %v", metadata.SearchID, err)
		}
	}

	return result, nil
}

// searchOne queries a single source and normalises its records.
// Failures are captured in the result, never returned.
func (c *SearchCoordinator) searchOne(
	ctx context.Context, adapter driven.SourceAdapter, params domain.SearchParams,
) domain.SourceResult {
	api := adapter.API()
	logger.Debug("Querying source %s", api)

	if err := adapter.Validate(); err != nil {
		logger.Warn("Source %s not usable: %v", api, err)
		return domain.SourceResult{
			API:        api,
			Success:    false,
			Error:      err.Error(),
			SearchTime: time.Now(),
		}
	}

	raw, err := adapter.Search(ctx, params)
	if err != nil {
		logger.Warn("Source %s failed: %v", api, err)
		return domain.SourceResult{
			API:        api,
			Success:    false,
			Error:      err.Error(),
			SearchTime: time.Now(),
		}
	}

	tenders := make([]domain.Tender, 0, len(raw))
	for _, notice := range raw {
		tenders = append(tenders, c.registry.Normalise(notice))
	}

	return domain.SourceResult{
		API:             api,
		Success:         true,
		Tenders:         tenders,
		RawCount:        len(raw),
		NormalisedCount: len(tenders),
		SearchTime:      time.Now(),
	}
}

// sortByRelevance orders tenders descending by relevance score, with the
// publish date as tie-break (later first). Lexicographic comparison on the
// ISO date strings is sufficient and intentional.
func sortByRelevance(tenders []domain.Tender) {
	sort.SliceStable(tenders, func(i, j int) bool {
		if tenders[i].RelevanceScore != tenders[j].RelevanceScore {
			return tenders[i].RelevanceScore > tenders[j].RelevanceScore
		}
		return tenders[i].PublishDate > tenders[j].PublishDate
	})
}
