package upstream

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", NewHTTPClient(5*time.Second), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

var sampleInput = types.ComparisonInput{
	JobTitle:        "Software Engineer",
	Industry:        "Technology",
	YearsExperience: 5,
	Salary:          150000,
	Location:        "San Francisco, CA",
}

func TestCompare(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/salary/compare", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got types.ComparisonInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, sampleInput, got)

			writeJSON(w, http.StatusOK, map[string]any{
				"comparison": map[string]any{
					"your_salary":     150000,
					"median_salary":   165000,
					"p25_salary":      140000,
					"p75_salary":      190000,
					"p90_salary":      220000,
					"percentile_rank": 38.5,
					"gap_percentage":  -9.1,
					"sample_size":     42,
					"recommendation": map[string]any{
						"status":  "below_median",
						"message": "Your salary is below the market median",
						"action":  "Consider negotiating",
					},
				},
			})
		})

		res, err := c.Compare(ctx, sampleInput)
		require.NoError(t, err)
		assert.Equal(t, 38.5, res.PercentileRank)
		assert.Equal(t, 165000.0, res.MedianSalary)
		assert.Equal(t, 42, res.SampleSize)
		assert.Equal(t, types.StatusBelowMedian, res.Recommendation.Status)
		assert.Nil(t, res.CompanyInsights)
	})

	t.Run("not found is insufficient data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Insufficient data"})
		})

		_, err := c.Compare(ctx, sampleInput)
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrInsufficientData)
		assert.True(t, IsStatus(err, http.StatusNotFound))
		assert.Contains(t, err.Error(), "Insufficient data")
	})

	t.Run("empty cohort is insufficient data", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"comparison": map[string]any{"sample_size": 0}})
		})

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrInsufficientData)
	})

	t.Run("server error is transport failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		})

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrTransportFailure)
		assert.NotErrorIs(t, err, api.ErrInsufficientData)
	})

	t.Run("bad request is validation", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "salary must be positive"})
		})

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrValidationFailed)
		assert.Contains(t, err.Error(), "salary must be positive")
	})

	t.Run("malformed body is transport failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"comparison":`))
		})

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrTransportFailure)
	})

	t.Run("missing comparison is transport failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		})

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrTransportFailure)
	})

	t.Run("unreachable host is transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		c := NewClient(url, NewHTTPClient(time.Second), slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := c.Compare(ctx, sampleInput)
		assert.ErrorIs(t, err, api.ErrTransportFailure)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/salary/submit", r.URL.Path)
			var got map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "Software Engineer", got["job_title"])
			assert.Equal(t, "Remote", got["remote_status"])
			_, hasGender := got["gender"]
			assert.False(t, hasGender)

			writeJSON(w, http.StatusCreated, map[string]string{"message": "Salary submitted successfully", "id": "42"})
		})

		id, err := c.Submit(ctx, types.SalarySubmission{ComparisonInput: sampleInput, RemoteStatus: "Remote"})
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("missing id", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
		})

		_, err := c.Submit(ctx, types.SalarySubmission{ComparisonInput: sampleInput})
		assert.ErrorIs(t, err, api.ErrTransportFailure)
	})
}

func TestNegotiationScript(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/negotiation/script", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"script": map[string]any{
				"opening":      "Thank you for meeting with me.",
				"market_data":  "The market median is $165,000.",
				"achievements": "Led the payments migration.",
				"ask":          "I'm requesting $170,000.",
				"closing":      "I'm committed to this team.",
				"tips":         []string{"Practice out loud", "Stay calm"},
				"data_points":  map[string]any{"market_median": 165000},
			},
		})
	})

	script, err := c.NegotiationScript(context.Background(), types.NegotiationRequest{
		CurrentSalary: 150000,
		TargetSalary:  170000,
		JobTitle:      "Software Engineer",
		Achievements:  []string{"Led the payments migration"},
	})
	require.NoError(t, err)
	assert.Equal(t, "I'm requesting $170,000.", script.Ask)
	assert.Len(t, script.Tips, 2)
	assert.Equal(t, 165000.0, script.DataPoints["market_median"])
}

func TestAdvice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chatbot/advice", r.URL.Path)
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "How do I ask for a raise?", got["message"])
		assert.Equal(t, 38.5, got["percentile"])

		writeJSON(w, http.StatusOK, map[string]any{
			"response":    "Start with market data.",
			"model":       "gpt-4",
			"rag_enabled": true,
			"sources": []map[string]any{
				{"title": "Negotiation basics", "category": "negotiation", "similarity": 0.82},
			},
		})
	})

	resp, err := c.Advice(context.Background(), types.AdviceRequest{
		Message:        "How do I ask for a raise?",
		AdvisorProfile: types.AdvisorProfile{JobTitle: "Software Engineer", Salary: 150000, Percentile: 38.5},
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", resp.Model)
	assert.False(t, resp.Fallback)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "negotiation", resp.Sources[0].Category)
	assert.InDelta(t, 0.82, resp.Sources[0].Similarity, 1e-9)
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "database": "connected", "data_points": 1200})
	})

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, 1200, h.DataPoints)
}

func TestPayGap(t *testing.T) {
	ctx := context.Background()

	t.Run("breakdown with decimal aggregates", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/analytics/pay-gap", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"gender_breakdown": []map[string]any{
					{"gender": "Male", "count": 120, "avg_salary": "125000.500", "median_salary": 118000},
					{"gender": "Female", "count": 98, "avg_salary": 103750.25, "median_salary": "99000"},
				},
				"ethnicity_breakdown": []map[string]any{
					{"ethnicity": "Asian", "count": 44, "avg_salary": 131000, "median_salary": 127500},
				},
				"gap_summary": map[string]any{
					"gender_gap_percentage":   17.0,
					"female_cents_per_dollar": 83.0,
				},
			})
		})

		report, err := c.PayGap(ctx)
		require.NoError(t, err)
		require.Len(t, report.GenderBreakdown, 2)
		assert.Equal(t, "Male", report.GenderBreakdown[0].Gender)
		assert.Equal(t, 120, report.GenderBreakdown[0].Count)
		assert.Equal(t, types.Amount(125000.5), report.GenderBreakdown[0].AvgSalary)
		assert.Equal(t, types.Amount(99000), report.GenderBreakdown[1].MedianSalary)
		require.Len(t, report.EthnicityBreakdown, 1)
		assert.Equal(t, "Asian", report.EthnicityBreakdown[0].Ethnicity)
		require.NotNil(t, report.GapSummary.FemaleCentsPerDollar)
		assert.Equal(t, 83.0, *report.GapSummary.FemaleCentsPerDollar)
		assert.Equal(t, 17.0, *report.GapSummary.GenderGapPercentage)
	})

	t.Run("no reportable groups", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"gender_breakdown": nil, "gap_summary": map[string]any{}})
		})

		report, err := c.PayGap(ctx)
		require.NoError(t, err)
		assert.NotNil(t, report.GenderBreakdown)
		assert.Empty(t, report.GenderBreakdown)
		assert.NotNil(t, report.EthnicityBreakdown)
		assert.Nil(t, report.GapSummary.GenderGapPercentage)
	})

	t.Run("server error is a transport failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "warehouse offline"})
		})

		_, err := c.PayGap(ctx)
		require.ErrorIs(t, err, api.ErrTransportFailure)
		assert.Contains(t, err.Error(), "warehouse offline")
	})

	t.Run("malformed amount", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"gender_breakdown": []map[string]any{{"gender": "Male", "count": 5, "avg_salary": "lots"}},
			})
		})

		_, err := c.PayGap(ctx)
		assert.ErrorIs(t, err, api.ErrTransportFailure)
	})
}
