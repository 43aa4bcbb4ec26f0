package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wagewatch/app/observability/metrics"
	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

const submittedMessage = "Salary submitted successfully"

var _ Service = (*ServiceImpl)(nil)

// Analytics is the part of the analytics backend the orchestrator calls.
type Analytics interface {
	Compare(ctx context.Context, input types.ComparisonInput) (*types.ComparisonResult, error)
	Submit(ctx context.Context, submission types.SalarySubmission) (string, error)
}

// Outcome is a comparison result together with the input that produced it.
// Triggered is only meaningful for AutoCompare.
type Outcome struct {
	Input     types.ComparisonInput
	Result    *types.ComparisonResult
	Triggered bool
}

// Service orchestrates comparison requests for browser sessions.
type Service interface {
	RequestComparison(ctx context.Context, sessionID string, form types.ComparisonForm) (*Outcome, error)
	Submit(ctx context.Context, sessionID string, form types.SubmissionForm) (*types.SubmissionReceipt, error)
	AutoCompare(ctx context.Context, sessionID, token string) (*Outcome, error)
	Current(ctx context.Context, sessionID string) types.ComparisonState
}

type ServiceImpl struct {
	logger    *slog.Logger
	analytics Analytics
	table     *costofliving.Table
	sessions  *sessionStore
	prefills  *prefillStore
	metrics   *metrics.AppMetrics
	now       func() time.Time
}

func NewService(analytics Analytics, table *costofliving.Table, sessionTTL, prefillTTL time.Duration, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		analytics: analytics,
		table:     table,
		sessions:  newSessionStore(sessionTTL),
		prefills:  newPrefillStore(prefillTTL),
		metrics:   m,
		now:       time.Now,
	}
}

// RequestComparison validates the form and, only if it is valid, issues one
// comparison request. Success replaces the session's result; failure keeps it
// and records a message for the user.
func (s *ServiceImpl) RequestComparison(ctx context.Context, sessionID string, form types.ComparisonForm) (*Outcome, error) {
	ctx, span := otel.Tracer("ComparisonService").Start(ctx, "RequestComparison", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	input, err := ParseComparisonForm(form, s.table)
	if err != nil {
		s.logger.DebugContext(ctx, "Comparison form rejected", slog.String("session_id", sessionID), slog.Any("error", err))
		s.recordOutcome(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid form")
		return nil, err
	}

	result, err := s.compare(ctx, sessionID, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "comparison failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "compared")
	return &Outcome{Input: input, Result: result}, nil
}

// Submit sends a salary data point and issues a prefill token that can start
// exactly one automatic comparison with the submitted data.
func (s *ServiceImpl) Submit(ctx context.Context, sessionID string, form types.SubmissionForm) (*types.SubmissionReceipt, error) {
	ctx, span := otel.Tracer("ComparisonService").Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Submit"), slog.String("session_id", sessionID))

	submission, err := ParseSubmissionForm(form, s.table)
	if err != nil {
		l.DebugContext(ctx, "Submission form rejected", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid form")
		return nil, err
	}

	id, err := s.analytics.Submit(ctx, submission)
	if err != nil {
		l.WarnContext(ctx, "Salary submission failed", slog.Any("error", err))
		s.recordUpstreamError(ctx, "submit")
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		return nil, fmt.Errorf("submit salary: %w", err)
	}

	token := s.prefills.issue(sessionID, submission.ComparisonInput)
	l.InfoContext(ctx, "Salary submitted", slog.String("submission_id", id))
	span.SetStatus(codes.Ok, "submitted")
	return &types.SubmissionReceipt{
		ID:           id,
		Message:      submittedMessage,
		PrefillToken: token,
		Prefill:      submission.ComparisonInput,
	}, nil
}

// AutoCompare runs the comparison carried by a prefill token. Only the first
// call for a token issues a request; later calls return the session's current
// result with Triggered false. The token is spent only once the session slot
// is claimed, so a call rejected as in flight can be retried.
func (s *ServiceImpl) AutoCompare(ctx context.Context, sessionID, token string) (*Outcome, error) {
	ctx, span := otel.Tracer("ComparisonService").Start(ctx, "AutoCompare", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	p, ok := s.prefills.lookup(token)
	if !ok || p.sessionID != sessionID {
		span.SetStatus(codes.Error, "unknown prefill")
		return nil, fmt.Errorf("%w: %s", api.ErrPrefillNotFound, token)
	}

	sl, seq, err := s.claim(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "comparison in flight")
		return nil, err
	}

	if !p.consume() {
		sl.release(seq)
		span.SetAttributes(attribute.Bool("triggered", false))
		state := s.Current(ctx, sessionID)
		out := &Outcome{Input: p.input, Result: state.Result}
		if state.Input != nil {
			out.Input = *state.Input
		}
		return out, nil
	}

	span.SetAttributes(attribute.Bool("triggered", true))
	result, err := s.run(ctx, sessionID, sl, seq, p.input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "comparison failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "compared")
	return &Outcome{Input: p.input, Result: result, Triggered: true}, nil
}

// Current returns a snapshot of the session's result slot.
func (s *ServiceImpl) Current(ctx context.Context, sessionID string) types.ComparisonState {
	_, span := otel.Tracer("ComparisonService").Start(ctx, "Current")
	defer span.End()

	sl, ok := s.sessions.peek(sessionID)
	if !ok {
		return types.ComparisonState{SessionID: sessionID}
	}
	return sl.snapshot(sessionID)
}

func (s *ServiceImpl) compare(ctx context.Context, sessionID string, input types.ComparisonInput) (*types.ComparisonResult, error) {
	sl, seq, err := s.claim(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, sessionID, sl, seq, input)
}

// claim marks the session's slot as in flight. The caller must settle it
// through run or release.
func (s *ServiceImpl) claim(ctx context.Context, sessionID string) (*slot, uint64, error) {
	sl := s.sessions.get(sessionID)
	seq, ok := sl.begin()
	if !ok {
		s.logger.InfoContext(ctx, "Comparison rejected, another one is in flight", slog.String("session_id", sessionID))
		s.recordOutcome(ctx, api.ErrRequestInFlight)
		return nil, 0, api.ErrRequestInFlight
	}
	return sl, seq, nil
}

func (s *ServiceImpl) run(ctx context.Context, sessionID string, sl *slot, seq uint64, input types.ComparisonInput) (*types.ComparisonResult, error) {
	l := s.logger.With(slog.String("method", "compare"), slog.String("session_id", sessionID))
	defer sl.release(seq)

	start := time.Now()
	result, err := s.analytics.Compare(ctx, input)
	if s.metrics != nil {
		s.metrics.ComparisonDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	s.recordOutcome(ctx, err)

	if err != nil {
		sl.fail(seq, api.UserMessage(err))
		if errors.Is(err, api.ErrInsufficientData) {
			l.InfoContext(ctx, "No cohort for comparison criteria",
				slog.String("job_title", input.JobTitle),
				slog.String("location", input.Location),
			)
		} else {
			l.WarnContext(ctx, "Comparison request failed", slog.Any("error", err))
			s.recordUpstreamError(ctx, "compare")
		}
		return nil, fmt.Errorf("compare salary: %w", err)
	}

	if !sl.succeed(seq, input, result, s.now()) {
		l.WarnContext(ctx, "Discarded stale comparison response", slog.Uint64("seq", seq))
	}
	l.DebugContext(ctx, "Comparison resolved",
		slog.Float64("percentile_rank", result.PercentileRank),
		slog.Int("sample_size", result.SampleSize),
	)
	return result, nil
}

func (s *ServiceImpl) recordOutcome(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ComparisonRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeLabel(err))))
}

func (s *ServiceImpl) recordUpstreamError(ctx context.Context, operation string) {
	if s.metrics == nil {
		return
	}
	s.metrics.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, api.ErrValidationFailed):
		return "invalid"
	case errors.Is(err, api.ErrRequestInFlight):
		return "in_flight"
	case errors.Is(err, api.ErrInsufficientData):
		return "insufficient_data"
	default:
		return "failed"
	}
}
