package advisor

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wagewatch/app/observability/metrics"
	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

const maxMessageLen = 2000

var _ Service = (*ServiceImpl)(nil)

// Provider answers one advice question. Implemented by the upstream client
// and by GeminiProvider.
type Provider interface {
	Advice(ctx context.Context, req types.AdviceRequest) (*types.AdviceResponse, error)
}

type Service interface {
	Advise(ctx context.Context, req types.AdviceRequest) (*types.AdviceResponse, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	provider Provider
	metrics  *metrics.AppMetrics
}

// NewService creates the advisor. A nil provider answers every question
// with rule-based advice.
func NewService(provider Provider, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, provider: provider, metrics: m}
}

// Advise asks the provider and falls back to rule-based advice when it fails
// or returns nothing.
func (s *ServiceImpl) Advise(ctx context.Context, req types.AdviceRequest) (*types.AdviceResponse, error) {
	ctx, span := otel.Tracer("AdvisorService").Start(ctx, "Advise", trace.WithAttributes(
		attribute.Float64("percentile", req.Percentile),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Advise"))

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		err := api.NewValidationError("message", "is required")
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	if len(req.Message) > maxMessageLen {
		err := api.NewValidationError("message", "is too long")
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	if s.provider == nil {
		return s.fallback(ctx, req.AdvisorProfile, "no provider"), nil
	}

	resp, err := s.provider.Advice(ctx, req)
	switch {
	case err != nil:
		l.WarnContext(ctx, "Advisor provider failed, using fallback advice", slog.Any("error", err))
		span.RecordError(err)
		return s.fallback(ctx, req.AdvisorProfile, "provider error"), nil
	case resp == nil || strings.TrimSpace(resp.Response) == "":
		l.WarnContext(ctx, "Advisor provider returned no text, using fallback advice")
		return s.fallback(ctx, req.AdvisorProfile, "empty response"), nil
	case resp.Model == FallbackModel:
		resp.Fallback = true
		s.recordFallback(ctx, "upstream fallback")
	}

	span.SetStatus(codes.Ok, "advised")
	return resp, nil
}

func (s *ServiceImpl) fallback(ctx context.Context, p types.AdvisorProfile, reason string) *types.AdviceResponse {
	s.recordFallback(ctx, reason)
	return &types.AdviceResponse{
		Response: FallbackAdvice(p),
		Model:    FallbackModel,
		Fallback: true,
	}
}

func (s *ServiceImpl) recordFallback(ctx context.Context, reason string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("fallback.reason", reason))
	if s.metrics == nil {
		return
	}
	s.metrics.AdvisorFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
