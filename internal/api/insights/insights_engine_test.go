package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

func result(percentile, yours, median float64) types.ComparisonResult {
	return types.ComparisonResult{
		YourSalary:     yours,
		MedianSalary:   median,
		P25Salary:      median * 0.8,
		P75Salary:      median * 1.2,
		P90Salary:      median * 1.5,
		PercentileRank: percentile,
		GapPercentage:  (yours - median) / median * 100,
		SampleSize:     120,
	}
}

func TestDeriveSuggestions_PercentileRule(t *testing.T) {
	engine := NewEngine(costofliving.DefaultTable())

	tests := []struct {
		name       string
		percentile float64
		wantKind   types.SuggestionKind
		wantTitle  string
	}{
		{"bottom quartile", 10, types.SuggestionUrgent, "Below Market Rate"},
		{"just below p25", 24.9, types.SuggestionUrgent, "Below Market Rate"},
		{"at p25", 25, types.SuggestionWarning, "Room for Growth"},
		{"below median", 49, types.SuggestionWarning, "Room for Growth"},
		{"top quartile", 75, types.SuggestionSuccess, "Strong Position"},
		{"top", 99, types.SuggestionSuccess, "Strong Position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.DeriveSuggestions(result(tt.percentile, 90000, 95000), "Remote")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantKind, got[0].Kind)
			assert.Equal(t, tt.wantTitle, got[0].Title)
		})
	}

	for _, p := range []float64{50, 60, 74.9} {
		got, err := engine.DeriveSuggestions(result(p, 100000, 95000), "Remote")
		require.NoError(t, err)
		assert.Empty(t, got, "percentile %v", p)
	}
}

func TestDeriveSuggestions_RequiredRaiseUsesCurrentSalary(t *testing.T) {
	engine := NewEngine(costofliving.DefaultTable())

	r := result(18, 80000, 95000)
	got, err := engine.DeriveSuggestions(r, "Remote")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 19, RequiredRaise(r))
	assert.Contains(t, got[0].Text, "19%")
	// relative to the median it would have been 16%
	assert.NotContains(t, got[0].Text, "16%")
}

func TestDeriveSuggestions_LocationRule(t *testing.T) {
	t.Run("high cost city gets first cheaper location", func(t *testing.T) {
		engine := NewEngine(costofliving.DefaultTable())
		got, err := engine.DeriveSuggestions(result(60, 150000, 140000), "San Francisco, CA")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, types.SuggestionInfo, got[0].Kind)
		assert.Equal(t, "Cost of Living Opportunity", got[0].Title)
		assert.Contains(t, got[0].Text, "Austin, TX")
		assert.Contains(t, got[0].Text, "46%")
	})

	t.Run("table order wins over lowest index", func(t *testing.T) {
		table, err := costofliving.NewTable([]types.LocationProfile{
			{ID: "Expensive", CostIndex: 200, Housing: 1, Food: 1, Transport: 1},
			{ID: "Cheap", CostIndex: 150, Housing: 1, Food: 1, Transport: 1},
			{ID: "Cheapest", CostIndex: 80, Housing: 1, Food: 1, Transport: 1},
		})
		require.NoError(t, err)
		got, err := NewEngine(table).DeriveSuggestions(result(60, 1, 1), "Expensive")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Text, "Cheap ")
		assert.Contains(t, got[0].Text, "25%")
	})

	t.Run("threshold is strict", func(t *testing.T) {
		table, err := costofliving.NewTable([]types.LocationProfile{
			{ID: "Home", CostIndex: 100, Housing: 1, Food: 1, Transport: 1},
			{ID: "Edge", CostIndex: 80, Housing: 1, Food: 1, Transport: 1},
		})
		require.NoError(t, err)
		got, err := NewEngine(table).DeriveSuggestions(result(60, 1, 1), "Home")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no cheaper location", func(t *testing.T) {
		engine := NewEngine(costofliving.DefaultTable())
		got, err := engine.DeriveSuggestions(result(60, 100000, 95000), "Austin, TX")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDeriveSuggestions_OrderAndBound(t *testing.T) {
	engine := NewEngine(costofliving.DefaultTable())
	table := costofliving.DefaultTable()

	for _, loc := range table.All() {
		for _, p := range []float64{0, 10, 24, 25, 49, 50, 74, 75, 100} {
			got, err := engine.DeriveSuggestions(result(p, 80000, 95000), loc.ID)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), 2)
			if len(got) == 2 {
				assert.NotEqual(t, types.SuggestionInfo, got[0].Kind)
				assert.Equal(t, types.SuggestionInfo, got[1].Kind)
			}
		}
	}

	got, err := engine.DeriveSuggestions(result(18, 80000, 95000), "New York, NY")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.SuggestionUrgent, got[0].Kind)
	assert.Equal(t, types.SuggestionInfo, got[1].Kind)
}

func TestDeriveSuggestions_Errors(t *testing.T) {
	engine := NewEngine(costofliving.DefaultTable())

	_, err := engine.DeriveSuggestions(result(18, 80000, 95000), "Narnia")
	assert.ErrorIs(t, err, api.ErrUnknownLocation)

	_, err = engine.DeriveSuggestions(result(18, 0, 95000), "Remote")
	assert.ErrorIs(t, err, api.ErrValidationFailed)
}

func TestDeriveSuggestions_Deterministic(t *testing.T) {
	engine := NewEngine(costofliving.DefaultTable())
	r := result(18, 80000, 95000)
	first, err := engine.DeriveSuggestions(r, "Boston, MA")
	require.NoError(t, err)
	second, err := engine.DeriveSuggestions(r, "Boston, MA")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildSeries(t *testing.T) {
	labels := []types.SeriesLabel{types.LabelP25, types.LabelMedian, types.LabelP75, types.LabelP90, types.LabelYou}

	t.Run("copies values in fixed order", func(t *testing.T) {
		r := types.ComparisonResult{P25Salary: 70000, MedianSalary: 90000, P75Salary: 115000, P90Salary: 140000, YourSalary: 85000}
		got := BuildSeries(r)
		require.Len(t, got, 5)
		want := []float64{70000, 90000, 115000, 140000, 85000}
		for i := range got {
			assert.Equal(t, labels[i], got[i].Label)
			assert.Equal(t, want[i], got[i].Value)
		}
	})

	t.Run("does not re-sort malformed upstream data", func(t *testing.T) {
		r := types.ComparisonResult{P25Salary: 120000, MedianSalary: 100000, P75Salary: 90000, P90Salary: 80000, YourSalary: 200000}
		got := BuildSeries(r)
		require.Len(t, got, 5)
		assert.Equal(t, []types.DistributionPoint{
			{Label: types.LabelP25, Value: 120000},
			{Label: types.LabelMedian, Value: 100000},
			{Label: types.LabelP75, Value: 90000},
			{Label: types.LabelP90, Value: 80000},
			{Label: types.LabelYou, Value: 200000},
		}, got)
	})
}

func TestEvaluate_CustomPolicy(t *testing.T) {
	always := Rule{
		Name:    "always",
		Matches: func(RuleInput) bool { return true },
		Produce: func(RuleInput) types.Suggestion { return types.Suggestion{Kind: types.SuggestionInfo, Title: "first"} },
	}
	shadowed := Rule{
		Name:    "shadowed",
		Matches: func(RuleInput) bool { return true },
		Produce: func(RuleInput) types.Suggestion { return types.Suggestion{Title: "second"} },
	}
	got := Evaluate([]RuleGroup{{Name: "g", Rules: []Rule{always, shadowed}}}, RuleInput{})
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Title)
}
