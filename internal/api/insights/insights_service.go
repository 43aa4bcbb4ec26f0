package insights

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/wagewatch/app/observability/metrics"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service interprets comparison results for presentation.
type Service interface {
	Analyze(ctx context.Context, req types.InsightsRequest) (*types.Insights, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	engine  *Engine
	col     costofliving.Service
	metrics *metrics.AppMetrics
}

func NewService(col costofliving.Service, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		engine:  NewEngine(col.Table()),
		col:     col,
		metrics: m,
	}
}

// Analyze derives suggestions, the distribution series and, when a comparison
// location is given, the equivalency figures. The three are independent and
// computed concurrently from the same immutable result.
func (s *ServiceImpl) Analyze(ctx context.Context, req types.InsightsRequest) (*types.Insights, error) {
	ctx, span := otel.Tracer("InsightsService").Start(ctx, "Analyze", trace.WithAttributes(
		attribute.String("location.user", req.UserLocation),
		attribute.String("location.compare", req.CompareLocation),
		attribute.Float64("percentile_rank", req.Comparison.PercentileRank),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Analyze"), slog.String("user_location", req.UserLocation))

	var out types.Insights
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		suggestions, err := s.engine.DeriveSuggestions(req.Comparison, req.UserLocation)
		if err != nil {
			return err
		}
		out.Suggestions = suggestions
		return nil
	})

	g.Go(func() error {
		out.Series = BuildSeries(req.Comparison)
		return nil
	})

	if req.CompareLocation != "" {
		g.Go(func() error {
			eq, err := s.equivalency(gctx, req.Comparison, req.UserLocation, req.CompareLocation)
			if err != nil {
				return err
			}
			out.Equivalency = eq
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.WarnContext(ctx, "Failed to analyze comparison", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "analyze failed")
		return nil, fmt.Errorf("analyze comparison: %w", err)
	}

	for _, sg := range out.Suggestions {
		if s.metrics != nil {
			s.metrics.SuggestionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(sg.Kind))))
		}
	}
	l.DebugContext(ctx, "Comparison analyzed", slog.Int("suggestions", len(out.Suggestions)))
	span.SetStatus(codes.Ok, "analyzed")
	return &out, nil
}

func (s *ServiceImpl) equivalency(ctx context.Context, result types.ComparisonResult, fromID, toID string) (*types.LocationEquivalency, error) {
	yours, err := s.col.Convert(ctx, result.YourSalary, fromID, toID)
	if err != nil {
		return nil, err
	}
	median, err := s.col.Convert(ctx, result.MedianSalary, fromID, toID)
	if err != nil {
		return nil, err
	}
	// both ids resolved above
	from, _ := s.col.Table().Lookup(fromID)
	to, _ := s.col.Table().Lookup(toID)
	return &types.LocationEquivalency{
		FromLocation:  fromID,
		ToLocation:    toID,
		YourSalary:    yours.Equivalent,
		MedianSalary:  median.Equivalent,
		CostIndexFrom: from.CostIndex,
		CostIndexTo:   to.CostIndex,
	}, nil
}
