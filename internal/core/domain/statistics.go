package domain

// Statistics is a read-only snapshot computed once over a final consolidated
// tender sequence. It is never mutated after construction.
type Statistics struct {
	// TotalCount is the size of the consolidated sequence.
	TotalCount int `json:"total_count"`

	// APIBreakdown maps each source to its record count.
	APIBreakdown map[SourceAPI]int `json:"api_breakdown"`

	// ValueStatistics summarises the subset of tenders with Value > 0.
	// Nil when no tender carries a positive value.
	ValueStatistics *ValueStatistics `json:"value_statistics,omitempty"`

	// CountryBreakdown counts tenders per country, ordered by descending
	// count with ties broken by first encounter.
	CountryBreakdown CountryBreakdown `json:"country_breakdown"`

	// DateRange spans the publish dates present in the sequence.
	// Nil when no tender has a publish date.
	DateRange *DateRange `json:"date_range,omitempty"`
}

// ValueStatistics summarises contract values over tenders with Value > 0.
type ValueStatistics struct {
	Total          float64 `json:"total_value"`
	Average        float64 `json:"average_value"`
	Min            float64 `json:"min_value"`
	Max            float64 `json:"max_value"`
	CountWithValue int     `json:"count_with_value"`
}

// CountryCount is one entry of the country breakdown.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountryBreakdown is an ordered country→count mapping. A slice rather than
// a map so the descending-count order survives JSON serialisation.
type CountryBreakdown []CountryCount

// DateRange spans the earliest and latest publish dates ("YYYY-MM-DD").
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}
