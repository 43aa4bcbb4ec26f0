package types

// NegotiationRequest is passed through to the negotiation-script service.
type NegotiationRequest struct {
	CurrentSalary float64  `json:"current_salary"`
	TargetSalary  float64  `json:"target_salary"`
	JobTitle      string   `json:"job_title"`
	Achievements  []string `json:"achievements"`
	Industry      string   `json:"industry,omitempty"`
	Location      string   `json:"location,omitempty"`
}

// NegotiationScript is rendered as-is; its content is never interpreted here.
type NegotiationScript struct {
	Opening      string         `json:"opening"`
	MarketData   string         `json:"market_data"`
	Achievements string         `json:"achievements"`
	Ask          string         `json:"ask"`
	Closing      string         `json:"closing"`
	Tips         []string       `json:"tips"`
	DataPoints   map[string]any `json:"data_points,omitempty"`
}
