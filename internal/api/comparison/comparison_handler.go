package comparison

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/wagewatch/app/middleware"
	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/insights"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

type Handler struct {
	service  Service
	insights insights.Service
	logger   *slog.Logger
}

func NewHandler(service Service, insightsService insights.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, insights: insightsService, logger: logger}
}

// Compare handles POST /salary/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ComparisonHandler").Start(r.Context(), "Compare", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/salary/compare"),
	))
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "missing session")
		return
	}

	var form types.ComparisonForm
	if err := api.DecodeJSONBody(w, r, &form); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.service.RequestComparison(ctx, sessionID, form)
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.respond(ctx, out, nil))
}

// Current handles GET /salary/compare/current.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := appMiddleware.GetSessionIDFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "missing session")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.service.Current(r.Context(), sessionID))
}

// Submit handles POST /salary/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ComparisonHandler").Start(r.Context(), "Submit", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/salary/submit"),
	))
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "missing session")
		return
	}

	var form types.SubmissionForm
	if err := api.DecodeJSONBody(w, r, &form); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	receipt, err := h.service.Submit(ctx, sessionID, form)
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, receipt)
}

// AutoCompare handles POST /salary/compare/prefill/{token}.
func (h *Handler) AutoCompare(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ComparisonHandler").Start(r.Context(), "AutoCompare", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/salary/compare/prefill/{token}"),
	))
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "missing session")
		return
	}

	out, err := h.service.AutoCompare(ctx, sessionID, chi.URLParam(r, "token"))
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	triggered := out.Triggered
	api.WriteJSONResponse(w, r, http.StatusOK, h.respond(ctx, out, &triggered))
}

// respond attaches insights to a result. Insights are best effort: a result
// that cannot be interpreted is still returned.
func (h *Handler) respond(ctx context.Context, out *Outcome, triggered *bool) types.ComparisonResponse {
	resp := types.ComparisonResponse{Comparison: out.Result, Triggered: triggered}
	if out.Result == nil {
		return resp
	}
	ins, err := h.insights.Analyze(ctx, types.InsightsRequest{
		Comparison:   *out.Result,
		UserLocation: out.Input.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to derive insights", slog.Any("error", err))
		return resp
	}
	resp.Insights = ins
	return resp
}
