package types

// SubmissionForm is the salary data submission form. The first five fields
// share the comparison form's rules; the rest are optional demographics.
type SubmissionForm struct {
	ComparisonForm
	Gender         string `json:"gender,omitempty"`
	Ethnicity      string `json:"ethnicity,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	RemoteStatus   string `json:"remote_status,omitempty"`
}

// SalarySubmission is the validated payload sent to the analytics service.
type SalarySubmission struct {
	ComparisonInput
	Gender         string `json:"gender,omitempty"`
	Ethnicity      string `json:"ethnicity,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	RemoteStatus   string `json:"remote_status,omitempty"`
}

// SubmissionReceipt is returned after a successful submission. PrefillToken
// lets the UI trigger exactly one automatic comparison with the submitted data.
type SubmissionReceipt struct {
	ID           string          `json:"id"`
	Message      string          `json:"message"`
	PrefillToken string          `json:"prefill_token"`
	Prefill      ComparisonInput `json:"prefill"`
}
