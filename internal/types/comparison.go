package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type RecommendationStatus string

const (
	StatusBelowMarket RecommendationStatus = "below_market"
	StatusBelowMedian RecommendationStatus = "below_median"
	StatusCompetitive RecommendationStatus = "competitive"
	StatusAboveMarket RecommendationStatus = "above_market"
)

// Recommendation is the analytics service's own verdict on a comparison.
type Recommendation struct {
	Status            RecommendationStatus `json:"status"`
	Message           string               `json:"message"`
	Action            string               `json:"action"`
	PotentialIncrease *string              `json:"potential_increase,omitempty"`
}

// CompanyInsights is only present when the comparison named a known company.
type CompanyInsights struct {
	CompanyName    string `json:"company_name"`
	PayTier        string `json:"pay_tier"`
	MarketPosition string `json:"market_position"`
	TypicalRange   string `json:"typical_range"`
	Note           string `json:"note"`
}

// MarketReference holds the unadjusted market figures next to company-adjusted ones.
type MarketReference struct {
	MarketMedian float64 `json:"market_median"`
	MarketP25    float64 `json:"market_p25"`
	MarketP75    float64 `json:"market_p75"`
	MarketP90    float64 `json:"market_p90"`
}

// ComparisonResult is returned by the analytics service and treated as read-only.
// Percentiles are assumed to be non-decreasing (P25 <= Median <= P75 <= P90);
// nothing here re-validates that.
type ComparisonResult struct {
	YourSalary      float64          `json:"your_salary"`
	MedianSalary    float64          `json:"median_salary"`
	AverageSalary   float64          `json:"average_salary,omitempty"`
	P25Salary       float64          `json:"p25_salary"`
	P75Salary       float64          `json:"p75_salary"`
	P90Salary       float64          `json:"p90_salary"`
	PercentileRank  float64          `json:"percentile_rank"`
	GapPercentage   float64          `json:"gap_percentage"`
	SampleSize      int              `json:"sample_size"`
	Recommendation  Recommendation   `json:"recommendation"`
	CompanyInsights *CompanyInsights `json:"company_insights,omitempty"`
	MarketReference *MarketReference `json:"market_reference,omitempty"`
}

// FormValue is a form field that may arrive as a JSON string or a JSON
// number. It keeps the raw text so validation can report a bad value
// against its field instead of failing the whole decode.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number: %w", err)
	}
	*v = FormValue(n.String())
	return nil
}

// ComparisonForm is the raw comparison form as typed by the user.
// Numeric fields stay text until validation parses them.
type ComparisonForm struct {
	JobTitle        string    `json:"job_title"`
	Industry        string    `json:"industry"`
	YearsExperience FormValue `json:"years_experience"`
	Salary          FormValue `json:"salary"`
	Location        string    `json:"location"`
	CompanyName     string    `json:"company_name,omitempty"`
}

// ComparisonInput is a validated comparison request, immutable once built.
type ComparisonInput struct {
	JobTitle        string  `json:"job_title"`
	Industry        string  `json:"industry"`
	YearsExperience int     `json:"years_experience"`
	Salary          float64 `json:"salary"`
	Location        string  `json:"location"`
	CompanyName     string  `json:"company_name,omitempty"`
}

// ComparisonState is the session's current result slot.
type ComparisonState struct {
	SessionID  string            `json:"session_id"`
	Result     *ComparisonResult `json:"result,omitempty"`
	Input      *ComparisonInput  `json:"input,omitempty"`
	LastError  string            `json:"last_error,omitempty"`
	Pending    bool              `json:"pending"`
	ResolvedAt *time.Time        `json:"resolved_at,omitempty"`
}

// ComparisonResponse is what the compare endpoints return to the UI.
type ComparisonResponse struct {
	Comparison *ComparisonResult `json:"comparison"`
	Insights   *Insights         `json:"insights,omitempty"`
	Triggered  *bool             `json:"triggered,omitempty"`
}
