package services

import (
	"sort"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// Aggregate computes the statistics snapshot for a final consolidated
// tender sequence in a single pass. Empty input yields zero counts and
// empty breakdowns; value and date statistics are omitted entirely (not
// zero-filled) when no tender carries them.
func Aggregate(tenders []domain.Tender) domain.Statistics {
	stats := domain.Statistics{
		TotalCount:       len(tenders),
		APIBreakdown:     make(map[domain.SourceAPI]int),
		CountryBreakdown: domain.CountryBreakdown{},
	}

	countryCounts := make(map[string]int)
	var countryOrder []string

	var values domain.ValueStatistics
	var dates domain.DateRange

	for _, tender := range tenders {
		stats.APIBreakdown[tender.SourceAPI]++

		country := tender.Country
		if country == "" {
			country = "unknown"
		}
		if countryCounts[country] == 0 {
			countryOrder = append(countryOrder, country)
		}
		countryCounts[country]++

		if tender.Value > 0 {
			if values.CountWithValue == 0 {
				values.Min = tender.Value
				values.Max = tender.Value
			} else {
				if tender.Value < values.Min {
					values.Min = tender.Value
				}
				if tender.Value > values.Max {
					values.Max = tender.Value
				}
			}
			values.Total += tender.Value
			values.CountWithValue++
		}

		if d := tender.PublishDate; d != "" {
			// ISO dates compare correctly as strings.
			if dates.Earliest == "" || d < dates.Earliest {
				dates.Earliest = d
			}
			if d > dates.Latest {
				dates.Latest = d
			}
		}
	}

	if values.CountWithValue > 0 {
		values.Average = values.Total / float64(values.CountWithValue)
		stats.ValueStatistics = &values
	}
	if dates.Earliest != "" {
		stats.DateRange = &dates
	}

	for _, country := range countryOrder {
		stats.CountryBreakdown = append(stats.CountryBreakdown, domain.CountryCount{
			Country: country,
			Count:   countryCounts[country],
		})
	}
	// Descending by count; stable sort keeps first-encountered order on ties.
	sort.SliceStable(stats.CountryBreakdown, func(i, j int) bool {
		return stats.CountryBreakdown[i].Count > stats.CountryBreakdown[j].Count
	})

	return stats
}
