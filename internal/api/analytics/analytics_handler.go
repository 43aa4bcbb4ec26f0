package analytics

import (
	"log/slog"
	"net/http"

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

// PayGap handles GET /analytics/pay-gap.
func (h *Handler) PayGap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AnalyticsHandler").Start(r.Context(), "PayGap", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/analytics/pay-gap"),
	))
	defer span.End()

	report, err := h.service.PayGap(ctx)
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, report)
}
