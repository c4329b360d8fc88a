package domain

import "fmt"

// SourceAPI identifies one of the supported procurement notice APIs.
type SourceAPI string

const (
	// SourceTED is the EU Tenders Electronic Daily API.
	SourceTED SourceAPI = "ted"
	// SourceOpenOpps is the OpenOpps OCDS aggregator API.
	SourceOpenOpps SourceAPI = "openopps"
	// SourceSAM is the US SAM.gov opportunities API.
	SourceSAM SourceAPI = "sam"
	// SourceContractsFinder is the UK Contracts Finder notice feed.
	SourceContractsFinder SourceAPI = "contracts_finder"
)

// AllSources lists every supported source in the canonical query order.
// The coordinator merges per-source results in this order, which makes the
// first-seen-wins deduplication policy deterministic.
var AllSources = []SourceAPI{SourceTED, SourceOpenOpps, SourceSAM, SourceContractsFinder}

// ParseSourceAPI converts a source identifier string to a SourceAPI.
// Returns ErrUnknownSource for unrecognised identifiers.
func ParseSourceAPI(s string) (SourceAPI, error) {
	switch SourceAPI(s) {
	case SourceTED, SourceOpenOpps, SourceSAM, SourceContractsFinder:
		return SourceAPI(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// DefaultCurrency returns the fallback currency used when a source omits
// the currency of a notice value.
func (a SourceAPI) DefaultCurrency() string {
	switch a {
	case SourceTED:
		return "EUR"
	case SourceSAM:
		return "USD"
	case SourceOpenOpps, SourceContractsFinder:
		return "GBP"
	default:
		return ""
	}
}

// NoticeURL builds the public web URL for a notice identifier.
// Each source has a fixed URL template.
func (a SourceAPI) NoticeURL(id string) string {
	switch a {
	case SourceTED:
		return "https://ted.europa.eu/udl?uri=TED:NOTICE:" + id
	case SourceSAM:
		return "https://sam.gov/opp/" + id + "/view"
	case SourceOpenOpps:
		return "https://openopps.com/tenders/" + id + "/"
	case SourceContractsFinder:
		return "https://www.contractsfinder.service.gov.uk/Notice/" + id
	default:
		return ""
	}
}

// DegradedID is the sentinel identifier carried by tenders produced from
// records that could not be normalised.
const DegradedID = "unknown"

// Tender is the canonical procurement notice record after normalisation.
// It is constructed once by a normaliser from one raw source record and is
// not mutated afterwards, except for the RelevanceScore stamped during
// consolidation.
type Tender struct {
	// ID is the source-scoped notice identifier. Not globally unique.
	ID string `json:"id"`

	// Title is the notice title.
	Title string `json:"title"`

	// Description is the notice description. Optional; some sources only
	// publish a title, others repeat the title here.
	Description string `json:"description,omitempty"`

	// Organization is the contracting authority or buyer.
	Organization string `json:"organization"`

	// Value is the contract value. 0 when unknown or unparseable,
	// never negative.
	Value float64 `json:"value"`

	// Currency is the ISO currency code. Falls back to the source's
	// default currency when the source omits it.
	Currency string `json:"currency"`

	// PublishDate is the publication date as "YYYY-MM-DD".
	// Empty when absent or malformed at the source.
	PublishDate string `json:"publish_date,omitempty"`

	// Deadline is the submission deadline as "YYYY-MM-DD".
	// Empty when absent or malformed at the source.
	Deadline string `json:"deadline,omitempty"`

	// Country is an ISO country code or free-text country name.
	Country string `json:"country"`

	// City is the place of performance. Optional.
	City string `json:"city,omitempty"`

	// URL is the public link to the notice.
	URL string `json:"url"`

	// SourceAPI identifies which API produced this record.
	// Always set by the normaliser and immutable afterwards.
	SourceAPI SourceAPI `json:"source_api"`

	// RelevanceScore is the computed search-term match score in [0,1].
	// Stamped during consolidation, not a persisted input.
	RelevanceScore float64 `json:"relevance_score"`

	// Error marks a degraded record that failed normalisation.
	// Degraded tenders are still counted by the aggregator so report
	// consumers can surface them.
	Error string `json:"error,omitempty"`
}

// Degraded reports whether this tender is a sentinel produced from a record
// that failed normalisation.
func (t *Tender) Degraded() bool {
	return t.Error != ""
}

// NewDegradedTender builds the sentinel tender for a record of the given
// source that could not be normalised.
func NewDegradedTender(api SourceAPI, reason string) Tender {
	return Tender{
		ID:        DegradedID,
		Currency:  api.DefaultCurrency(),
		SourceAPI: api,
		Error:     reason,
	}
}
