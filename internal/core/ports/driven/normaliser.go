package driven

import (
	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// Normaliser converts one source's raw records into canonical tenders.
// Each source API has exactly one normaliser.
type Normaliser interface {
	// API returns the source this normaliser handles.
	API() domain.SourceAPI

	// Normalise maps a raw record to a canonical Tender. Individual field
	// failures degrade to documented defaults; an error is returned only
	// when the record as a whole cannot be decoded.
	Normalise(raw domain.RawNotice) (domain.Tender, error)
}

// NormaliserRegistry dispatches raw records to the matching normaliser.
type NormaliserRegistry interface {
	// Normalise converts a raw record using the normaliser registered for
	// its source. Records that cannot be normalised come back as degraded
	// sentinel tenders; Normalise never fails and never drops a record.
	Normalise(raw domain.RawNotice) domain.Tender

	// Register adds a normaliser to the registry.
	Register(n Normaliser)
}
