package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

func TestScore_EmptyTermMatchesNothing(t *testing.T) {
	tender := domain.Tender{
		Title:        "Road Maintenance",
		Description:  "Road Maintenance",
		Organization: "Road Maintenance Inc",
	}

	assert.Zero(t, Score(tender, ""))
	assert.Zero(t, Score(tender, "   "))
}

func TestScore_FieldWeights(t *testing.T) {
	tests := []struct {
		name   string
		tender domain.Tender
		want   float64
	}{
		{
			name:   "title only",
			tender: domain.Tender{Title: "Bridge construction works"},
			want:   0.5,
		},
		{
			name:   "description only",
			tender: domain.Tender{Description: "construction of a new bridge"},
			want:   0.3,
		},
		{
			name:   "organization only",
			tender: domain.Tender{Organization: "National Construction Agency"},
			want:   0.2,
		},
		{
			name: "title and description",
			tender: domain.Tender{
				Title:       "Construction tender",
				Description: "major construction project",
			},
			want: 0.8,
		},
		{
			name: "all three clamps at 1.0",
			tender: domain.Tender{
				Title:        "Construction tender",
				Description:  "construction project",
				Organization: "Construction Agency",
			},
			want: 1.0,
		},
		{
			name:   "no match",
			tender: domain.Tender{Title: "Catering services", Organization: "School Board"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.tender, "construction"), 1e-9)
		})
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	tender := domain.Tender{Title: "ROAD MAINTENANCE CONTRACT"}
	assert.InDelta(t, 0.5, Score(tender, "road maintenance"), 1e-9)

	tender = domain.Tender{Title: "road maintenance contract"}
	assert.InDelta(t, 0.5, Score(tender, "ROAD"), 1e-9)
}

func TestScore_SubstringNotTokenised(t *testing.T) {
	// Plain substring containment: "rail" matches inside "railway".
	tender := domain.Tender{Title: "Railway electrification"}
	assert.InDelta(t, 0.5, Score(tender, "rail"), 1e-9)
}

func TestScore_Monotonic(t *testing.T) {
	// Adding a matching field never decreases the score.
	base := domain.Tender{Title: "Harbour dredging"}
	withDesc := base
	withDesc.Description = "dredging of the harbour basin"
	withOrg := withDesc
	withOrg.Organization = "Dredging Authority"

	s1 := Score(base, "dredging")
	s2 := Score(withDesc, "dredging")
	s3 := Score(withOrg, "dredging")

	assert.GreaterOrEqual(t, s2, s1)
	assert.GreaterOrEqual(t, s3, s2)
	assert.LessOrEqual(t, s3, 1.0)
}
