package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSearchWindowDays is the publication window applied when no
// date range is given.
const DefaultSearchWindowDays = 30

// ISODate is the canonical date layout used throughout the pipeline.
const ISODate = "2006-01-02"

// SearchParams configures one consolidated search run. It is built
// explicitly by the caller (CLI flags merged with stored config) and passed
// into the coordinator; the pipeline reads no ambient state.
type SearchParams struct {
	// Term is the search keyword. Required.
	Term string `json:"search_term"`

	// DateFrom is the start of the publication window ("YYYY-MM-DD").
	DateFrom string `json:"date_from"`

	// DateTo is the end of the publication window ("YYYY-MM-DD").
	DateTo string `json:"date_to"`

	// MinValue is the minimum contract value filter. Non-negative.
	MinValue int `json:"min_value"`

	// Sources lists the APIs to query, in merge order.
	Sources []SourceAPI `json:"sources"`
}

// Validate checks the parameters and fills defaults for the optional
// fields. The term and the source identifiers are the only fatal
// configuration errors; everything downstream degrades per source.
func (p *SearchParams) Validate() error {
	p.Term = strings.TrimSpace(p.Term)
	if p.Term == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptySearchTerm)
	}

	if p.MinValue < 0 {
		return fmt.Errorf("%w: min value must not be negative", ErrInvalidInput)
	}

	now := time.Now()
	if p.DateFrom == "" {
		p.DateFrom = now.AddDate(0, 0, -DefaultSearchWindowDays).Format(ISODate)
	}
	if p.DateTo == "" {
		p.DateTo = now.Format(ISODate)
	}
	for _, d := range []string{p.DateFrom, p.DateTo} {
		if _, err := time.Parse(ISODate, d); err != nil {
			return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, d)
		}
	}

	if len(p.Sources) == 0 {
		p.Sources = append([]SourceAPI(nil), AllSources...)
	}
	for _, s := range p.Sources {
		if _, err := ParseSourceAPI(string(s)); err != nil {
			return err
		}
	}

	return nil
}

// SourceResult is the outcome of querying one source during a run.
// One instance per requested source, owned by the coordinator.
type SourceResult struct {
	// API identifies the queried source.
	API SourceAPI `json:"api"`

	// Success is false when the source search failed.
	Success bool `json:"success"`

	// Tenders are the normalised records from this source.
	Tenders []Tender `json:"tenders"`

	// RawCount is the number of raw records the adapter returned.
	RawCount int `json:"raw_count"`

	// NormalisedCount is the number of records after normalisation.
	NormalisedCount int `json:"normalized_count"`

	// Error describes the failure. Set iff Success is false.
	Error string `json:"error,omitempty"`

	// SearchTime is when the source search finished.
	SearchTime time.Time `json:"search_time"`
}

// SourceError is a structured per-source failure entry collected by the
// coordinator. A failing source never aborts the overall run.
type SourceError struct {
	// API identifies the failed source.
	API SourceAPI `json:"api"`

	// Message describes the failure.
	Message string `json:"error"`

	// Timestamp is when the failure was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// SearchMetadata describes one consolidated run.
type SearchMetadata struct {
	// SearchID uniquely identifies this run.
	SearchID string `json:"search_id"`

	// Term is the search keyword used.
	Term string `json:"search_term"`

	// Sources are the APIs that were queried, in merge order.
	Sources []SourceAPI `json:"apis_used"`

	// DateFrom and DateTo bound the publication window.
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`

	// MinValue is the minimum contract value filter.
	MinValue int `json:"min_value"`

	// ExecutedAt is when the run started.
	ExecutedAt time.Time `json:"search_timestamp"`
}

// ConsolidatedResult is the complete output of one run: the deduplicated,
// scored and sorted tender sequence plus statistics and per-source errors.
// This is the structure handed to the result writers.
type ConsolidatedResult struct {
	Metadata   SearchMetadata `json:"search_metadata"`
	Tenders    []Tender       `json:"consolidated_results"`
	Statistics Statistics     `json:"statistics"`
	Errors     []SourceError  `json:"errors"`
}
