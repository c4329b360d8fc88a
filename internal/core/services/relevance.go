package services

import (
	"strings"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// Field weights for relevance scoring. Contributions are independent and
// additive; the total is clamped at 1.0.
const (
	titleWeight        = 0.5
	descriptionWeight  = 0.3
	organizationWeight = 0.2
)

// Score computes the search-term match score for a tender, in [0,1].
// The test is case-insensitive substring containment against the title,
// description and organization fields. This is a static heuristic: no
// tokenisation, no fuzzy matching. An empty term matches nothing.
func Score(tender domain.Tender, term string) float64 {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(strings.ToLower(tender.Title), term) {
		score += titleWeight
	}
	if strings.Contains(strings.ToLower(tender.Description), term) {
		score += descriptionWeight
	}
	if strings.Contains(strings.ToLower(tender.Organization), term) {
		score += organizationWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
