package domain

import "time"

type Year = int

// ReferenceYears are the years the emissions source reports on.
var ReferenceYears = []Year{1990, 2005, 2022}

// ProvinceAll marks rows of the national COVID feed in the covid_stats
// relation.
const ProvinceAll = "All"

type Topic int

const (
	TopicOther Topic = iota
	TopicCovid
	TopicGHG
)

func (t Topic) String() string {
	switch t {
	case TopicCovid:
		return "covid"
	case TopicGHG:
		return "ghg"
	default:
		return "other"
	}
}

// SourceTier is one ranked data source in the fallback chain.
type SourceTier int

const (
	TierLive SourceTier = iota
	TierStore
	TierAggregate
)

func (t SourceTier) String() string {
	switch t {
	case TierLive:
		return "live"
	case TierStore:
		return "store"
	default:
		return "aggregate"
	}
}

// EmissionRecord is one unpivoted row of the ghg relation, in megatons of
// CO2 equivalent.
type EmissionRecord struct {
	Province  string  `db:"province"`
	Year      Year    `db:"year"`
	Emissions float64 `db:"emissions"`
}

// YearTotal is the per-year sum of emissions across all provinces.
type YearTotal struct {
	Year  Year    `db:"year"`
	Total float64 `db:"total"`
}

type CovidStatRecord struct {
	Date            time.Time `db:"date"`
	Province        string    `db:"province"`
	TotalCases      int64     `db:"total_cases"`
	TotalFatalities int64     `db:"total_fatalities"`
	TotalRecoveries int64     `db:"total_recoveries"`
	NewCases        int64     `db:"new_cases"`
	Cases7dAvg      float64   `db:"cases_7d_avg"`
}

// ActiveCases may be negative under upstream corrections; it is reported
// as-is so data-quality issues stay visible.
func (r *CovidStatRecord) ActiveCases() int64 {
	return r.TotalCases - r.TotalFatalities - r.TotalRecoveries
}

// ResolvedAnswer is the transient result of a tiered lookup; exactly one of
// Covid, Emission or YearTotals is populated depending on topic and tier.
type ResolvedAnswer struct {
	Topic      Topic
	Province   *Province
	Tier       SourceTier
	Covid      *CovidStatRecord
	Emission   *EmissionRecord
	YearTotals []YearTotal
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
