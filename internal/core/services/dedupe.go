package services

import (
	"strings"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
	"github.com/custodia-labs/procura-cli/internal/logger"
)

// Deduplicate collapses tenders that describe the same opportunity across
// sources. Two tenders match when their normalised title and organization
// are both equal; cross-source notice identifiers are not comparable, so
// title+organization is the practical correlation signal.
//
// The first-seen record wins. Input order is the deterministic merge order
// (sources in requested order, records in source order), so retention is
// stable across runs. Output keeps the input order minus removed duplicates.
// Degraded sentinels are never treated as duplicates of each other.
func Deduplicate(tenders []domain.Tender) []domain.Tender {
	seen := make(map[string]bool, len(tenders))
	result := make([]domain.Tender, 0, len(tenders))

	for _, tender := range tenders {
		// Degraded sentinels all carry empty titles and organizations;
		// collapsing them would hide failures, so each passes through.
		if tender.Degraded() {
			result = append(result, tender)
			continue
		}

		key := dedupeKey(tender)
		if seen[key] {
			logger.Debug("Duplicate dropped: %q from %s", tender.Title, tender.SourceAPI)
			continue
		}
		seen[key] = true
		result = append(result, tender)
	}

	if removed := len(tenders) - len(result); removed > 0 {
		logger.Info("Deduplication removed %d of %d tenders", removed, len(tenders))
	}

	return result
}

// dedupeKey builds the case-insensitive, whitespace-trimmed matching key.
func dedupeKey(t domain.Tender) string {
	title := strings.ToLower(strings.TrimSpace(t.Title))
	org := strings.ToLower(strings.TrimSpace(t.Organization))
	return title + "\x00" + org
}
