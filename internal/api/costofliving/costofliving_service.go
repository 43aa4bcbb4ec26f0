package costofliving

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
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

// Service exposes the cost-of-living table and the equivalency converter.
type Service interface {
	Locations(ctx context.Context) []types.LocationProfile
	Convert(ctx context.Context, amount float64, fromID, toID string) (*types.Equivalency, error)
	Table() *Table
}

type ServiceImpl struct {
	logger  *slog.Logger
	table   *Table
	memo    *cache.Cache
	metrics *metrics.AppMetrics
}

// NewService creates the converter. Conversions are pure, so results are
// memoized per (amount, from, to) for memoTTL.
func NewService(table *Table, memoTTL time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		table:   table,
		memo:    cache.New(memoTTL, 2*memoTTL),
		metrics: m,
	}
}

func (s *ServiceImpl) Table() *Table {
	return s.table
}

func (s *ServiceImpl) Locations(ctx context.Context) []types.LocationProfile {
	_, span := otel.Tracer("CostOfLivingService").Start(ctx, "Locations")
	defer span.End()
	return s.table.All()
}

// Convert translates amount from one location to another. Unknown locations
// fail with api.ErrUnknownLocation.
func (s *ServiceImpl) Convert(ctx context.Context, amount float64, fromID, toID string) (*types.Equivalency, error) {
	ctx, span := otel.Tracer("CostOfLivingService").Start(ctx, "Convert", trace.WithAttributes(
		attribute.Float64("amount", amount),
		attribute.String("location.from", fromID),
		attribute.String("location.to", toID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Convert"), slog.String("from", fromID), slog.String("to", toID))

	key := memoKey(amount, fromID, toID)
	if v, ok := s.memo.Get(key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		s.record(ctx, "ok")
		return &types.Equivalency{FromLocation: fromID, ToLocation: toID, Amount: amount, Equivalent: v.(int64)}, nil
	}

	equivalent, err := s.table.Convert(amount, fromID, toID)
	if err != nil {
		if errors.Is(err, api.ErrUnknownLocation) {
			l.WarnContext(ctx, "Conversion with unknown location", slog.Any("error", err))
			s.record(ctx, "unknown_location")
		} else {
			l.DebugContext(ctx, "Conversion rejected", slog.Any("error", err))
			s.record(ctx, "invalid")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "conversion failed")
		return nil, fmt.Errorf("convert %s to %s: %w", fromID, toID, err)
	}

	s.memo.SetDefault(key, equivalent)
	s.record(ctx, "ok")
	l.DebugContext(ctx, "Converted salary", slog.Float64("amount", amount), slog.Int64("equivalent", equivalent))
	span.SetStatus(codes.Ok, "converted")
	return &types.Equivalency{FromLocation: fromID, ToLocation: toID, Amount: amount, Equivalent: equivalent}, nil
}

func (s *ServiceImpl) record(ctx context.Context, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ConversionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func memoKey(amount float64, fromID, toID string) string {
	return strconv.FormatFloat(amount, 'g', -1, 64) + "\x00" + fromID + "\x00" + toID
}
