package advisor

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

// Advice handles POST /advisor/advice.
func (h *Handler) Advice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AdvisorHandler").Start(r.Context(), "Advice", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/advisor/advice"),
	))
	defer span.End()

	var req types.AdviceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Advise(ctx, req)
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
