package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appLogger "github.com/FACorreiaa/wagewatch/app/logger"
	appMiddleware "github.com/FACorreiaa/wagewatch/app/middleware"
	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/api/advisor"
	"github.com/FACorreiaa/wagewatch/internal/api/analytics"
	"github.com/FACorreiaa/wagewatch/internal/api/comparison"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	"github.com/FACorreiaa/wagewatch/internal/api/insights"
	"github.com/FACorreiaa/wagewatch/internal/api/negotiation"
	"github.com/FACorreiaa/wagewatch/internal/api/upstream"
)

// UpstreamHealth reports whether the analytics backend is reachable.
type UpstreamHealth interface {
	Health(ctx context.Context) (*upstream.HealthStatus, error)
}

// Config contains dependencies needed for the router setup
type Config struct {
	CostOfLivingHandler *costofliving.Handler
	InsightsHandler     *insights.Handler
	ComparisonHandler   *comparison.Handler
	NegotiationHandler  *negotiation.Handler
	AdvisorHandler      *advisor.Handler
	AnalyticsHandler    *analytics.Handler
	Upstream            UpstreamHealth
	Logger              *slog.Logger
	AllowedOrigins      []string
	RequestTimeout      time.Duration
}

// SetupRouter wires the API routes. Server-wide middleware is applied by
// NewHandler before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.SessionHeader},
		ExposedHeaders:   []string{appMiddleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler(cfg.Upstream, cfg.logger()))

		r.Get("/locations", cfg.CostOfLivingHandler.ListLocations)
		r.Get("/locations/convert", cfg.CostOfLivingHandler.Convert)

		r.Route("/salary", func(r chi.Router) {
			r.Post("/compare", cfg.ComparisonHandler.Compare)
			r.Get("/compare/current", cfg.ComparisonHandler.Current)
			r.Post("/compare/prefill/{token}", cfg.ComparisonHandler.AutoCompare)
			r.Post("/submit", cfg.ComparisonHandler.Submit)
		})

		r.Post("/insights", cfg.InsightsHandler.Analyze)
		r.Post("/negotiation/script", cfg.NegotiationHandler.Script)
		r.Post("/advisor/advice", cfg.AdvisorHandler.Advice)
		r.Get("/analytics/pay-gap", cfg.AnalyticsHandler.PayGap)
	})

	return r
}

// NewHandler wraps the API router with the server-wide middleware stack.
func NewHandler(cfg *Config, logger *slog.Logger) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appMiddleware.Session)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", SetupRouter(cfg))
	return router
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func healthHandler(up UpstreamHealth, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := up.Health(r.Context())
		if err != nil {
			logger.WarnContext(r.Context(), "Analytics backend health check failed", slog.Any("error", err))
			api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "degraded",
				"upstream": "unreachable",
			})
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"upstream": status,
		})
	}
}
