package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

type compareResponse struct {
	Comparison *types.ComparisonResult `json:"comparison"`
}

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HealthStatus is the analytics backend's own health report.
type HealthStatus struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	DataPoints int    `json:"data_points"`
	Timestamp  string `json:"timestamp"`
}

func compareClassifier(status int) error {
	if status == http.StatusNotFound {
		return api.ErrInsufficientData
	}
	return defaultClassifier(status)
}

// Compare asks the analytics service to place input within its cohort.
// A 404 or an empty cohort is reported as api.ErrInsufficientData.
func (c *Client) Compare(ctx context.Context, input types.ComparisonInput) (*types.ComparisonResult, error) {
	var resp compareResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/salary/compare", input, &resp, compareClassifier); err != nil {
		return nil, err
	}
	if resp.Comparison == nil {
		return nil, fmt.Errorf("%w: response has no comparison", api.ErrTransportFailure)
	}
	if resp.Comparison.SampleSize == 0 {
		return nil, fmt.Errorf("%w: empty cohort", api.ErrInsufficientData)
	}
	return resp.Comparison, nil
}

// Submit stores an anonymous salary data point and returns its id.
func (c *Client) Submit(ctx context.Context, submission types.SalarySubmission) (string, error) {
	var resp submitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/salary/submit", submission, &resp, defaultClassifier); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: submission response has no id", api.ErrTransportFailure)
	}
	return resp.ID, nil
}

// Health reports the analytics backend status.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var resp HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &resp, defaultClassifier); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PayGap returns the gender and ethnicity salary breakdown. Empty breakdowns
// are normalized to empty slices.
func (c *Client) PayGap(ctx context.Context) (*types.PayGapReport, error) {
	var resp types.PayGapReport
	if err := c.doJSON(ctx, http.MethodGet, "/api/analytics/pay-gap", nil, &resp, defaultClassifier); err != nil {
		return nil, err
	}
	if resp.GenderBreakdown == nil {
		resp.GenderBreakdown = []types.PayGapGroup{}
	}
	if resp.EthnicityBreakdown == nil {
		resp.EthnicityBreakdown = []types.PayGapGroup{}
	}
	return &resp, nil
}
