package comparison

import (
	"math"
	"strconv"
	"strings"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

// ParseComparisonForm validates the raw form and builds the immutable input.
// The first failing field is reported; nothing is sent upstream on failure.
func ParseComparisonForm(form types.ComparisonForm, table *costofliving.Table) (types.ComparisonInput, error) {
	var in types.ComparisonInput

	jobTitle, err := required("job_title", form.JobTitle)
	if err != nil {
		return in, err
	}
	industry, err := required("industry", form.Industry)
	if err != nil {
		return in, err
	}

	rawYears, err := required("years_experience", string(form.YearsExperience))
	if err != nil {
		return in, err
	}
	years, err := strconv.Atoi(rawYears)
	if err != nil {
		return in, api.NewValidationError("years_experience", "must be a whole number")
	}
	if years < 0 {
		return in, api.NewValidationError("years_experience", "must not be negative")
	}

	rawSalary, err := required("salary", string(form.Salary))
	if err != nil {
		return in, err
	}
	salary, err := strconv.ParseFloat(rawSalary, 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return in, api.NewValidationError("salary", "must be a number")
	}
	if salary < 0 {
		return in, api.NewValidationError("salary", "must not be negative")
	}

	location, err := required("location", form.Location)
	if err != nil {
		return in, err
	}
	if !table.Has(location) {
		return in, api.NewValidationError("location", "is not a supported location")
	}

	return types.ComparisonInput{
		JobTitle:        jobTitle,
		Industry:        industry,
		YearsExperience: years,
		Salary:          salary,
		Location:        location,
		CompanyName:     strings.TrimSpace(form.CompanyName),
	}, nil
}

// ParseSubmissionForm applies the comparison rules to the shared fields and
// passes the optional demographics through trimmed.
func ParseSubmissionForm(form types.SubmissionForm, table *costofliving.Table) (types.SalarySubmission, error) {
	in, err := ParseComparisonForm(form.ComparisonForm, table)
	if err != nil {
		return types.SalarySubmission{}, err
	}
	return types.SalarySubmission{
		ComparisonInput: in,
		Gender:          strings.TrimSpace(form.Gender),
		Ethnicity:       strings.TrimSpace(form.Ethnicity),
		EducationLevel:  strings.TrimSpace(form.EducationLevel),
		CompanySize:     strings.TrimSpace(form.CompanySize),
		RemoteStatus:    strings.TrimSpace(form.RemoteStatus),
	}, nil
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", api.NewValidationError(field, "is required")
	}
	return v, nil
}
