package types

// AdvisorProfile is the snapshot of the user sent along with every question.
type AdvisorProfile struct {
	JobTitle     string  `json:"job_title"`
	Salary       float64 `json:"salary"`
	Industry     string  `json:"industry"`
	Location     string  `json:"location"`
	Percentile   float64 `json:"percentile"`
	MedianSalary float64 `json:"median_salary"`
}

// AdviceRequest is stateless: no conversation history is kept anywhere.
type AdviceRequest struct {
	Message string `json:"message"`
	AdvisorProfile
}

// AdviceSource is a knowledge-base article the advisor drew on.
type AdviceSource struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

type AdviceResponse struct {
	Response string         `json:"response"`
	Model    string         `json:"model"`
	Sources  []AdviceSource `json:"sources,omitempty"`
	Fallback bool           `json:"fallback"`
}
