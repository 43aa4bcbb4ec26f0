package negotiation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
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

var _ Service = (*ServiceImpl)(nil)

// ScriptGenerator produces negotiation scripts.
type ScriptGenerator interface {
	NegotiationScript(ctx context.Context, req types.NegotiationRequest) (*types.NegotiationScript, error)
}

type Service interface {
	Script(ctx context.Context, req types.NegotiationRequest) (*types.NegotiationScript, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	generator ScriptGenerator
	metrics   *metrics.AppMetrics
}

func NewService(generator ScriptGenerator, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, generator: generator, metrics: m}
}

// Script validates req and forwards it. The returned script is not inspected.
func (s *ServiceImpl) Script(ctx context.Context, req types.NegotiationRequest) (*types.NegotiationScript, error) {
	ctx, span := otel.Tracer("NegotiationService").Start(ctx, "Script", trace.WithAttributes(
		attribute.String("job_title", req.JobTitle),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Script"))

	clean, err := Normalize(req)
	if err != nil {
		l.DebugContext(ctx, "Negotiation request rejected", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	script, err := s.generator.NegotiationScript(ctx, clean)
	if err != nil {
		l.WarnContext(ctx, "Negotiation script request failed", slog.Any("error", err))
		if s.metrics != nil {
			s.metrics.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "negotiation_script")))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "script failed")
		return nil, fmt.Errorf("negotiation script: %w", err)
	}
	span.SetStatus(codes.Ok, "script generated")
	return script, nil
}

// Normalize checks the salaries and job title and drops blank achievement slots.
func Normalize(req types.NegotiationRequest) (types.NegotiationRequest, error) {
	if math.IsNaN(req.CurrentSalary) || math.IsInf(req.CurrentSalary, 0) || req.CurrentSalary <= 0 {
		return req, api.NewValidationError("current_salary", "must be greater than zero")
	}
	if math.IsNaN(req.TargetSalary) || math.IsInf(req.TargetSalary, 0) || req.TargetSalary < 0 {
		return req, api.NewValidationError("target_salary", "must not be negative")
	}
	jobTitle := strings.TrimSpace(req.JobTitle)
	if jobTitle == "" {
		return req, api.NewValidationError("job_title", "is required")
	}

	achievements := make([]string, 0, len(req.Achievements))
	for _, a := range req.Achievements {
		if a = strings.TrimSpace(a); a != "" {
			achievements = append(achievements, a)
		}
	}

	return types.NegotiationRequest{
		CurrentSalary: req.CurrentSalary,
		TargetSalary:  req.TargetSalary,
		JobTitle:      jobTitle,
		Achievements:  achievements,
		Industry:      strings.TrimSpace(req.Industry),
		Location:      strings.TrimSpace(req.Location),
	}, nil
}
