package crew_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
	"jetsetgo/internal/crew"
	"jetsetgo/internal/services"
	"jetsetgo/pkg/llm"
	"jetsetgo/pkg/tools"
)

var Module = fx.Provide(provideItineraryEngine)

// provideItineraryEngine builds the travel crew. Any configuration problem is logged and yields
// a nil engine, which puts the trip service in placeholder mode instead of failing startup.
func provideItineraryEngine(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) services.ItineraryEngine {
	if strings.EqualFold(cfg.Engine.Mode, services.ModePlaceholder) {
		log.Warn("engine.mode is placeholder, serving placeholder itineraries")
		return nil
	}

	provider, err := NewProvider(context.Background(), cfg.LLM)
	if err != nil {
		log.Warn("LLM provider unavailable, serving placeholder itineraries", zap.Error(err))
		return nil
	}
	if closer, ok := provider.(interface{ Close() error }); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}

	travelCrew, err := crew.NewTravelCrew(provider, Toolset(cfg.Tools, log), crew.TravelOptions{
		Temperature:   cfg.LLM.Temperature,
		MaxIterations: cfg.Engine.MaxIterations,
	}, log)
	if err != nil {
		log.Warn("travel crew could not be built, serving placeholder itineraries", zap.Error(err))
		return nil
	}

	log.Info("travel crew ready",
		zap.String("provider", provider.Name()),
		zap.Duration("timeout", cfg.Engine.Timeout))
	return travelCrew
}

func NewProvider(ctx context.Context, cfg config.LLMConfig) (llm.Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return llm.NewGeminiProvider(ctx, cfg.Key(), cfg.Model)
	case "openai":
		return llm.NewOpenAIProvider(cfg.Key(), cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Toolset returns the tools handed to the agents. Search needs a Serper key; the scraper is
// always available.
func Toolset(cfg config.ToolsConfig, log *zap.Logger) []tools.Tool {
	toolset := []tools.Tool{tools.NewWebScraper(cfg.ScrapeMaxChars, cfg.HTTPTimeout)}
	if cfg.SerperAPIKey != "" {
		toolset = append(toolset, tools.NewSerperSearch(cfg.SerperAPIKey, cfg.SerperEndpoint, cfg.SearchResults, cfg.HTTPTimeout))
	} else {
		log.Warn("SERPER_API_KEY not set, agents run without web search")
	}
	return toolset
}
