package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is an aggregate figure from the analytics service. Database decimals
// may be serialized as JSON strings, so both forms are accepted.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// PayGapGroup is one demographic group's salary aggregate. Only one of
// Gender and Ethnicity is set, depending on the breakdown it belongs to.
type PayGapGroup struct {
	Gender       string `json:"gender,omitempty"`
	Ethnicity    string `json:"ethnicity,omitempty"`
	Count        int    `json:"count"`
	AvgSalary    Amount `json:"avg_salary"`
	MedianSalary Amount `json:"median_salary"`
}

// PayGapSummary is empty unless both male and female groups are large enough
// to be reported.
type PayGapSummary struct {
	GenderGapPercentage  *float64 `json:"gender_gap_percentage,omitempty"`
	FemaleCentsPerDollar *float64 `json:"female_cents_per_dollar,omitempty"`
}

// PayGapReport is the analytics service's pay gap breakdown, passed through
// to the UI unchanged.
type PayGapReport struct {
	GenderBreakdown    []PayGapGroup `json:"gender_breakdown"`
	EthnicityBreakdown []PayGapGroup `json:"ethnicity_breakdown"`
	GapSummary         PayGapSummary `json:"gap_summary"`
}
