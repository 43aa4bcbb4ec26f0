package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/FACorreiaa/wagewatch/app/observability/metrics"
	"github.com/FACorreiaa/wagewatch/config"
	"github.com/FACorreiaa/wagewatch/internal/api/advisor"
	"github.com/FACorreiaa/wagewatch/internal/api/analytics"
	"github.com/FACorreiaa/wagewatch/internal/api/comparison"
	"github.com/FACorreiaa/wagewatch/internal/api/costofliving"
	generativeAI "github.com/FACorreiaa/wagewatch/internal/api/generative_ai"
	"github.com/FACorreiaa/wagewatch/internal/api/insights"
	"github.com/FACorreiaa/wagewatch/internal/api/negotiation"
	"github.com/FACorreiaa/wagewatch/internal/api/upstream"
	"github.com/FACorreiaa/wagewatch/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *slog.Logger
	Upstream            *upstream.Client
	CostOfLivingHandler *costofliving.Handler
	InsightsHandler     *insights.Handler
	ComparisonHandler   *comparison.Handler
	NegotiationHandler  *negotiation.Handler
	AdvisorHandler      *advisor.Handler
	AnalyticsHandler    *analytics.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, m *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	table := costofliving.DefaultTable()
	if len(cfg.CostOfLiving.Locations) > 0 {
		custom, err := costofliving.NewTable(cfg.CostOfLiving.Locations)
		if err != nil {
			return nil, fmt.Errorf("cost of living table: %w", err)
		}
		table = custom
	}

	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, upstream.NewHTTPClient(cfg.Upstream.Timeout), logger)

	colService := costofliving.NewService(table, cfg.Cache.ConversionTTL, m, logger)
	insightsService := insights.NewService(colService, m, logger)
	comparisonService := comparison.NewService(upstreamClient, table, cfg.Cache.SessionTTL, cfg.Cache.PrefillTTL, m, logger)
	negotiationService := negotiation.NewService(upstreamClient, m, logger)

	provider, err := newAdvisorProvider(ctx, cfg, upstreamClient, logger)
	if err != nil {
		return nil, err
	}
	advisorService := advisor.NewService(provider, m, logger)
	analyticsService := analytics.NewService(upstreamClient, m, logger)

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Upstream:            upstreamClient,
		CostOfLivingHandler: costofliving.NewHandler(colService, logger),
		InsightsHandler:     insights.NewHandler(insightsService, logger),
		ComparisonHandler:   comparison.NewHandler(comparisonService, insightsService, logger),
		NegotiationHandler:  negotiation.NewHandler(negotiationService, logger),
		AdvisorHandler:      advisor.NewHandler(advisorService, logger),
		AnalyticsHandler:    analytics.NewHandler(analyticsService, logger),
	}, nil
}

func newAdvisorProvider(ctx context.Context, cfg *config.Config, remote *upstream.Client, logger *slog.Logger) (advisor.Provider, error) {
	switch cfg.Advisor.Provider {
	case "", "remote":
		return remote, nil
	case "gemini":
		ai, err := generativeAI.NewAIClient(ctx, os.Getenv(cfg.Advisor.APIKeyEnv), cfg.Advisor.Model)
		if err != nil {
			return nil, fmt.Errorf("advisor provider: %w", err)
		}
		logger.Info("Advisor uses Gemini", slog.String("model", ai.Model()))
		return advisor.NewGeminiProvider(ai), nil
	case "fallback":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown advisor provider %q", cfg.Advisor.Provider)
	}
}

// RouterConfig returns the router dependencies held by the container.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		CostOfLivingHandler: c.CostOfLivingHandler,
		InsightsHandler:     c.InsightsHandler,
		ComparisonHandler:   c.ComparisonHandler,
		NegotiationHandler:  c.NegotiationHandler,
		AdvisorHandler:      c.AdvisorHandler,
		AnalyticsHandler:    c.AnalyticsHandler,
		Upstream:            c.Upstream,
		Logger:              c.Logger,
		AllowedOrigins:      c.Config.Server.AllowedOrigins,
		RequestTimeout:      c.Config.Server.Timeout,
	}
}
