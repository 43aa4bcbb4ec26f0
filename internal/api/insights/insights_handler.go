package insights

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Analyze handles POST /insights for a result the client already holds.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("InsightsHandler").Start(r.Context(), "Analyze", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/insights"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Analyze"))

	var req types.InsightsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.DebugContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserLocation == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "user_location is required")
		return
	}

	out, err := h.service.Analyze(ctx, req)
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, out)
}
