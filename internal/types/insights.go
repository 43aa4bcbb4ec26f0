package types

type SuggestionKind string

const (
	SuggestionUrgent  SuggestionKind = "urgent"
	SuggestionWarning SuggestionKind = "warning"
	SuggestionSuccess SuggestionKind = "success"
	SuggestionInfo    SuggestionKind = "info"
)

// Suggestion is a prioritized, human-readable hint derived from a comparison.
type Suggestion struct {
	Kind  SuggestionKind `json:"kind"`
	Title string         `json:"title"`
	Text  string         `json:"text"`
}

type SeriesLabel string

const (
	LabelP25    SeriesLabel = "P25"
	LabelMedian SeriesLabel = "Median"
	LabelP75    SeriesLabel = "P75"
	LabelP90    SeriesLabel = "P90"
	LabelYou    SeriesLabel = "You"
)

// DistributionPoint is one datum of the salary distribution chart.
type DistributionPoint struct {
	Label SeriesLabel `json:"label"`
	Value float64     `json:"value"`
}

// InsightsRequest asks for the interpretation of an already-fetched result.
type InsightsRequest struct {
	Comparison      ComparisonResult `json:"comparison"`
	UserLocation    string           `json:"user_location"`
	CompareLocation string           `json:"compare_location,omitempty"`
}

// Insights bundles everything derived from a single comparison result.
type Insights struct {
	Suggestions []Suggestion         `json:"suggestions"`
	Series      []DistributionPoint  `json:"series"`
	Equivalency *LocationEquivalency `json:"equivalency,omitempty"`
}
