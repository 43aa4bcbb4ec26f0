package costofliving

import (
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wagewatch/internal/api"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ListLocations returns the cost-of-living table in its defined order.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CostOfLivingHandler").Start(r.Context(), "ListLocations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/locations"),
	))
	defer span.End()

	locations := h.service.Locations(ctx)
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"locations": locations,
		"baseline":  BaselineIndex,
	})
}

// Convert handles GET /locations/convert?amount=&from=&to=.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CostOfLivingHandler").Start(r.Context(), "Convert", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/locations/convert"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Convert"))

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "from and to are required")
		return
	}
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		l.DebugContext(ctx, "Invalid amount", slog.String("amount", q.Get("amount")))
		api.ErrorResponse(w, r, http.StatusBadRequest, "amount must be a number")
		return
	}

	eq, err := h.service.Convert(ctx, amount, from, to)
	if err != nil {
		l.InfoContext(ctx, "Conversion failed", slog.Any("error", err))
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, eq)
}
