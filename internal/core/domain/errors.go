package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSource indicates an unrecognised source API identifier.
	// Requesting an unknown source is a configuration error and is fatal
	// at the coordinator boundary, unlike per-source search failures.
	ErrUnknownSource = errors.New("unknown source API")

	// ErrEmptySearchTerm indicates a search was requested without a term.
	ErrEmptySearchTerm = errors.New("search term is required")

	// ErrMissingCredentials indicates a source adapter has no credentials
	// configured. Surfaces as a per-source failure, not a fatal error.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
