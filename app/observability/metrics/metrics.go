package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ComparisonRequestsTotal   metric.Int64Counter
	ComparisonDurationSeconds metric.Float64Histogram
	ConversionsTotal          metric.Int64Counter
	SuggestionsTotal          metric.Int64Counter
	AdvisorFallbacksTotal     metric.Int64Counter
	UpstreamErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ComparisonRequestsTotal, err = meter.Int64Counter(
		"comparison_requests_total",
		metric.WithDescription("Comparison requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("comparison_requests_total: %w", err)
	}

	m.ComparisonDurationSeconds, err = meter.Float64Histogram(
		"comparison_duration_seconds",
		metric.WithDescription("Duration of upstream comparison requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("comparison_duration_seconds: %w", err)
	}

	m.ConversionsTotal, err = meter.Int64Counter(
		"equivalency_conversions_total",
		metric.WithDescription("Cost-of-living conversions by outcome"),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("equivalency_conversions_total: %w", err)
	}

	m.SuggestionsTotal, err = meter.Int64Counter(
		"suggestions_emitted_total",
		metric.WithDescription("Suggestions emitted by kind"),
		metric.WithUnit("{suggestion}"),
	)
	if err != nil {
		return nil, fmt.Errorf("suggestions_emitted_total: %w", err)
	}

	m.AdvisorFallbacksTotal, err = meter.Int64Counter(
		"advisor_fallbacks_total",
		metric.WithDescription("Advice answered by the rule-based fallback"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("advisor_fallbacks_total: %w", err)
	}

	m.UpstreamErrorsTotal, err = meter.Int64Counter(
		"upstream_errors_total",
		metric.WithDescription("Errors returned by upstream services"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("upstream_errors_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global instruments once, using the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("WageWatch"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the global AppMetrics. Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
