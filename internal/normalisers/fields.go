package normalisers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/procura-cli/internal/core/domain"
)

// First returns the first element of a multi-valued field, or "" when the
// list is empty. Sources like TED represent most fields as ordered lists.
func First(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Amount parses a contract value leniently. Sources deliver values as JSON
// numbers, numeric strings, or garbage; anything that does not parse to a
// non-negative number becomes 0, never an error.
type Amount float64

// UnmarshalJSON accepts numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n > 0 {
			*a = Amount(n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(ParseAmount(s))
	}
	// Unparseable values stay 0 rather than failing the record.
	return nil
}

// ParseAmount converts a numeric string to a non-negative float.
// Thousands separators are tolerated. Returns 0 on failure.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// dateLayouts are the native date formats seen across the sources, tried
// in order against the first ten characters of the value.
var dateLayouts = []string{
	domain.ISODate, // 2024-05-03, also the prefix of RFC 3339 timestamps
	"01/02/2006",   // SAM.gov MM/dd/yyyy
	"02.01.2006",   // TED legacy dd.MM.yyyy
}

// ParseDate normalises a source date string to "YYYY-MM-DD".
// Values shorter than ten characters or that fit no known layout come back
// empty (absent), never a sentinel string.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return ""
	}
	head := s[:10]
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, head); err == nil {
			return t.Format(domain.ISODate)
		}
	}
	return ""
}
