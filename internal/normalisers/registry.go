package normalisers

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/core/ports/driven"
	"github.com/custodia-labs/procura-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw notices to the normaliser registered for their
// source API. Records that cannot be normalised degrade to sentinel tenders
// so the pipeline never drops a record and never aborts.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.SourceAPI]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[domain.SourceAPI]driven.Normaliser),
	}
}

// Register adds a normaliser. A later registration for the same source
// replaces the earlier one.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[n.API()] = n
}

// Normalise converts a raw record to a canonical tender. Unknown sources
// and undecodable payloads come back as degraded sentinel tenders carrying
// the failure reason; the record stays countable downstream.
func (r *Registry) Normalise(raw domain.RawNotice) domain.Tender {
	r.mu.RLock()
	normaliser, ok := r.normalisers[raw.API]
	r.mu.RUnlock()

	if !ok {
		logger.Warn("No normaliser for source %q", raw.API)
		return domain.NewDegradedTender(raw.API, fmt.Sprintf("no normaliser for source %q", raw.API))
	}

	tender, err := normaliser.Normalise(raw)
	if err != nil {
		logger.Warn("Normalisation failed for %s record: %v", raw.API, err)
		return domain.NewDegradedTender(raw.API, err.Error())
	}

	// The source tag is assigned here and is immutable afterwards.
	tender.SourceAPI = raw.API
	return tender
}
