package insights

import (
	"fmt"

	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

// relocationThreshold: a location qualifies when its index is strictly below
// this share of the user's index.
const relocationThreshold = 0.8

// RuleInput is what every rule sees. It is read-only.
type RuleInput struct {
	Result       types.ComparisonResult
	UserLocation types.LocationProfile
	Table        *costofliving.Table
}

// Rule is a pure predicate-plus-producer pair.
type Rule struct {
	Name    string
	Matches func(in RuleInput) bool
	Produce func(in RuleInput) types.Suggestion
}

// RuleGroup emits the suggestion of its first matching rule, or nothing.
type RuleGroup struct {
	Name  string
	Rules []Rule
}

// DefaultPolicy is evaluated group by group; group order is output order.
var DefaultPolicy = []RuleGroup{
	{
		Name: "percentile",
		Rules: []Rule{
			{Name: "below_market", Matches: belowP25, Produce: belowMarketRate},
			{Name: "room_for_growth", Matches: belowMedian, Produce: roomForGrowth},
			{Name: "strong_position", Matches: topQuartile, Produce: strongPosition},
		},
	},
	{
		Name: "location",
		Rules: []Rule{
			{Name: "cost_of_living", Matches: hasCheaperLocation, Produce: costOfLivingOpportunity},
		},
	},
}

func belowP25(in RuleInput) bool    { return in.Result.PercentileRank < 25 }
func belowMedian(in RuleInput) bool { return in.Result.PercentileRank < 50 }
func topQuartile(in RuleInput) bool { return in.Result.PercentileRank >= 75 }

// RequiredRaise is the raise, in percent of the current salary, needed to reach
// the median.
func RequiredRaise(r types.ComparisonResult) int {
	return int(costofliving.Round(((r.MedianSalary - r.YourSalary) / r.YourSalary) * 100))
}

func belowMarketRate(in RuleInput) types.Suggestion {
	return types.Suggestion{
		Kind:  types.SuggestionUrgent,
		Title: "Below Market Rate",
		Text: fmt.Sprintf("Your salary is in the bottom quartile for your role. A %d%% raise would bring you to the market median, so you have strong grounds to request a salary review.",
			RequiredRaise(in.Result)),
	}
}

func roomForGrowth(RuleInput) types.Suggestion {
	return types.Suggestion{
		Kind:  types.SuggestionWarning,
		Title: "Room for Growth",
		Text:  "You're earning below the market median. Document your achievements and bring market data to your next compensation conversation.",
	}
}

func strongPosition(RuleInput) types.Suggestion {
	return types.Suggestion{
		Kind:  types.SuggestionSuccess,
		Title: "Strong Position",
		Text:  "You're in the top quartile for your role. Keep documenting your impact and use your position to negotiate benefits and growth opportunities.",
	}
}

// cheaperLocation returns the first table entry, in table order, whose index is
// strictly below relocationThreshold of the user's index.
func cheaperLocation(in RuleInput) (types.LocationProfile, bool) {
	limit := in.UserLocation.CostIndex * relocationThreshold
	for _, loc := range in.Table.All() {
		if loc.CostIndex < limit {
			return loc, true
		}
	}
	return types.LocationProfile{}, false
}

func hasCheaperLocation(in RuleInput) bool {
	_, ok := cheaperLocation(in)
	return ok
}

// CostReduction is the cost-of-living reduction, in percent, of moving from
// user to candidate.
func CostReduction(user, candidate types.LocationProfile) int {
	return int(costofliving.Round((1 - candidate.CostIndex/user.CostIndex) * 100))
}

func costOfLivingOpportunity(in RuleInput) types.Suggestion {
	loc, _ := cheaperLocation(in)
	return types.Suggestion{
		Kind:  types.SuggestionInfo,
		Title: "Cost of Living Opportunity",
		Text: fmt.Sprintf("Living in %s would cut your cost of living by about %d%% compared to %s. Consider remote roles or relocation to stretch your salary further.",
			loc.ID, CostReduction(in.UserLocation, loc), in.UserLocation.ID),
	}
}

// Evaluate runs policy against in and returns at most one suggestion per group,
// in group order.
func Evaluate(policy []RuleGroup, in RuleInput) []types.Suggestion {
	out := make([]types.Suggestion, 0, len(policy))
	for _, group := range policy {
		for _, rule := range group.Rules {
			if rule.Matches(in) {
				out = append(out, rule.Produce(in))
				break
			}
		}
	}
	return out
}
