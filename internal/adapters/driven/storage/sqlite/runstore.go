package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save records a completed run. Saving the same search ID again replaces the
// stored run.
func (s *runStore) Save(ctx context.Context, result *domain.ConsolidatedResult) error {
	if result == nil || result.Metadata.SearchID == "" {
		return domain.ErrInvalidInput
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	meta := result.Metadata
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO search_runs
			(search_id, search_term, date_from, date_to, min_value, sources, total_count, error_count, result, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(search_id) DO UPDATE SET
			search_term = excluded.search_term,
			date_from = excluded.date_from,
			date_to = excluded.date_to,
			min_value = excluded.min_value,
			sources = excluded.sources,
			total_count = excluded.total_count,
			error_count = excluded.error_count,
			result = excluded.result,
			executed_at = excluded.executed_at
	`, meta.SearchID, meta.Term, meta.DateFrom, meta.DateTo, meta.MinValue,
		joinSources(meta.Sources), len(result.Tenders), len(result.Errors),
		string(resultJSON), meta.ExecutedAt)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run with its full result by search ID.
func (s *runStore) Get(ctx context.Context, searchID string) (*driven.RunSummary, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT search_id, search_term, date_from, date_to, min_value, sources, total_count, error_count, result
		FROM search_runs WHERE search_id = ?
	`, searchID)

	var summary driven.RunSummary
	var sources, resultJSON string
	if err := row.Scan(&summary.SearchID, &summary.Params.Term,
		&summary.Params.DateFrom, &summary.Params.DateTo, &summary.Params.MinValue,
		&sources, &summary.TotalCount, &summary.ErrorCount, &resultJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	summary.Params.Sources = splitSources(sources)

	var result domain.ConsolidatedResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	summary.Result = &result

	return &summary, nil
}

// List returns the most recent runs, newest first, without results.
func (s *runStore) List(ctx context.Context, limit int) ([]driven.RunSummary, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT search_id, search_term, date_from, date_to, min_value, sources, total_count, error_count
		FROM search_runs
		ORDER BY executed_at DESC, search_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []driven.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var summary driven.RunSummary
		var sources string
		if err := rows.Scan(&summary.SearchID, &summary.Params.Term,
			&summary.Params.DateFrom, &summary.Params.DateTo, &summary.Params.MinValue,
			&sources, &summary.TotalCount, &summary.ErrorCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		summary.Params.Sources = splitSources(sources)
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return summaries, nil
}

// joinSources encodes the queried source list as a comma-separated string.
func joinSources(sources []domain.SourceAPI) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

// splitSources decodes a comma-separated source list.
func splitSources(s string) []domain.SourceAPI {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	sources := make([]domain.SourceAPI, len(parts))
	for i, p := range parts {
		sources[i] = domain.SourceAPI(p)
	}
	return sources
}
