package types

// LocationProfile is one entry of the cost-of-living table.
// CostIndex is relative to a national baseline of 100. Housing, Food and
// Transport are illustrative monthly costs and are never used in conversions.
type LocationProfile struct {
	ID        string  `json:"id" mapstructure:"id"`
	CostIndex float64 `json:"cost_index" mapstructure:"costIndex"`
	Housing   float64 `json:"housing" mapstructure:"housing"`
	Food      float64 `json:"food" mapstructure:"food"`
	Transport float64 `json:"transport" mapstructure:"transport"`
}

// Equivalency is the purchasing-power equivalent of an amount in another location.
type Equivalency struct {
	FromLocation string  `json:"from_location"`
	ToLocation   string  `json:"to_location"`
	Amount       float64 `json:"amount"`
	Equivalent   int64   `json:"equivalent"`
}

// LocationEquivalency converts the headline figures of a comparison into another location.
type LocationEquivalency struct {
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	YourSalary    int64   `json:"your_salary"`
	MedianSalary  int64   `json:"median_salary"`
	CostIndexFrom float64 `json:"cost_index_from"`
	CostIndexTo   float64 `json:"cost_index_to"`
}
