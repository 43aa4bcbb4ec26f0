package advisor

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/FACorreiaa/wagewatch/internal/types"
)

// FallbackModel marks answers produced without a language model.
const FallbackModel = "fallback"

func dollars(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// BuildPrompt renders the advisor prompt for one stateless question.
func BuildPrompt(req types.AdviceRequest) string {
	var b strings.Builder
	b.WriteString("You are a helpful salary negotiation advisor for a pay transparency platform.\n\n")
	b.WriteString("USER'S PROFILE:\n")
	fmt.Fprintf(&b, "- Job Title: %s\n", orDefault(req.JobTitle, "professional"))
	fmt.Fprintf(&b, "- Current Salary: %s\n", dollars(req.Salary))
	fmt.Fprintf(&b, "- Industry: %s\n", orDefault(req.Industry, "technology"))
	fmt.Fprintf(&b, "- Location: %s\n", req.Location)
	fmt.Fprintf(&b, "- Percentile Rank: %s percentile\n", humanize.Ordinal(int(math.Round(req.Percentile))))
	fmt.Fprintf(&b, "- Market Median: %s\n\n", dollars(req.MedianSalary))
	fmt.Fprintf(&b, "USER'S QUESTION: %s\n\n", req.Message)
	b.WriteString(`INSTRUCTIONS:
- Provide helpful, specific advice for their salary negotiation
- Be encouraging but realistic
- Keep your response concise (2-3 paragraphs max)
- Focus on actionable advice
- If they're below median, suggest how to negotiate
- If above, suggest how to maintain their position`)
	return b.String()
}

// FallbackAdvice answers from the percentile band alone. The two lower bands
// quote the dollar gap to the median.
func FallbackAdvice(p types.AdvisorProfile) string {
	gap := dollars(p.MedianSalary - p.Salary)
	switch {
	case p.Percentile < 25:
		return fmt.Sprintf(`Your salary is in the bottom quartile, which suggests you have strong grounds for negotiation.

Based on market data, you could potentially earn %s more to reach the median. I recommend:
1. Document your key achievements and contributions
2. Research comparable salaries at other companies
3. Schedule a meeting with your manager to discuss your compensation
4. Be prepared to discuss your value with specific examples

Remember, the data is on your side. Use it confidently!`, gap)
	case p.Percentile < 50:
		return fmt.Sprintf(`You're earning below the market median, which means there's room for improvement.

The gap to median is about %s. Here's how to approach this:
1. Prepare a list of your accomplishments from the past year
2. Highlight any additional responsibilities you've taken on
3. Frame your ask around your value, not just the market data
4. Consider timing, since performance reviews are ideal moments

Stay positive and focus on your contributions!`, gap)
	case p.Percentile < 75:
		return `Congratulations! You're earning above the market median, which is a strong position.

To maintain and grow your compensation:
1. Continue documenting your wins and impact
2. Seek stretch opportunities that increase your visibility
3. Build relationships with leadership
4. Stay current on market trends in your field

You're doing well. Keep up the great work!`
	default:
		return `Excellent! You're in the top quartile of earners for your role.

To maintain this position:
1. Focus on high-impact projects that demonstrate your value
2. Consider mentoring others, it showcases leadership
3. Stay visible to decision-makers
4. Keep developing skills that are in high demand

You've earned your position through strong performance. Continue to deliver results!`
	}
}
