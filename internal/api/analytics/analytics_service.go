package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/wagewatch/app/observability/metrics"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// PayGapSource provides the aggregated pay gap breakdown.
type PayGapSource interface {
	PayGap(ctx context.Context) (*types.PayGapReport, error)
}

type Service interface {
	PayGap(ctx context.Context) (*types.PayGapReport, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	source  PayGapSource
	metrics *metrics.AppMetrics
}

func NewService(source PayGapSource, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, source: source, metrics: m}
}

// PayGap fetches the report. Figures are aggregated upstream and not recomputed.
func (s *ServiceImpl) PayGap(ctx context.Context) (*types.PayGapReport, error) {
	ctx, span := otel.Tracer("AnalyticsService").Start(ctx, "PayGap")
	defer span.End()

	report, err := s.source.PayGap(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Pay gap request failed", slog.Any("error", err))
		if s.metrics != nil {
			s.metrics.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "pay_gap")))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "pay gap failed")
		return nil, fmt.Errorf("pay gap: %w", err)
	}

	span.SetAttributes(
		attribute.Int("gender_groups", len(report.GenderBreakdown)),
		attribute.Int("ethnicity_groups", len(report.EthnicityBreakdown)),
	)
	span.SetStatus(codes.Ok, "pay gap fetched")
	return report, nil
}
