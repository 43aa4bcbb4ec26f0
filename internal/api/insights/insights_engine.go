package insights

import (
	"fmt"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

// Engine derives suggestions and distribution series from comparison results.
// It holds no mutable state; every call recomputes from its inputs.
type Engine struct {
	table  *costofliving.Table
	policy []RuleGroup
}

func NewEngine(table *costofliving.Table) *Engine {
	return &Engine{table: table, policy: DefaultPolicy}
}

// DeriveSuggestions returns zero to two suggestions: the percentile suggestion
// first, then the cost-of-living one.
func (e *Engine) DeriveSuggestions(result types.ComparisonResult, userLocationID string) ([]types.Suggestion, error) {
	if !(result.YourSalary > 0) {
		return nil, api.NewValidationError("your_salary", "must be greater than zero")
	}
	userLoc, err := e.table.Lookup(userLocationID)
	if err != nil {
		return nil, fmt.Errorf("derive suggestions: %w", err)
	}
	return Evaluate(e.policy, RuleInput{Result: result, UserLocation: userLoc, Table: e.table}), nil
}

// BuildSeries returns exactly five points, P25, Median, P75, P90, You, with
// values copied from result. The order is fixed and never depends on values.
func BuildSeries(result types.ComparisonResult) []types.DistributionPoint {
	return []types.DistributionPoint{
		{Label: types.LabelP25, Value: result.P25Salary},
		{Label: types.LabelMedian, Value: result.MedianSalary},
		{Label: types.LabelP75, Value: result.P75Salary},
		{Label: types.LabelP90, Value: result.P90Salary},
		{Label: types.LabelYou, Value: result.YourSalary},
	}
}
