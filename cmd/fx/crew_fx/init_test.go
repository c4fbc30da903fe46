package crew_fx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"jetsetgo/internal/config"
)

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), config.LLMConfig{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), config.LLMConfig{Provider: "claude", APIKey: "k"})
	assert.ErrorContains(t, err, "unknown llm provider")

	p, err := NewProvider(context.Background(), config.LLMConfig{Provider: "openai", OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", p.Name())
}

func TestToolset(t *testing.T) {
	assert.Len(t, Toolset(config.ToolsConfig{}, zap.NewNop()), 1)
	assert.Len(t, Toolset(config.ToolsConfig{SerperAPIKey: "k"}, zap.NewNop()), 2)
}

func TestEngineFallsBackToPlaceholder(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	engine := provideItineraryEngine(lc, &config.Config{Engine: config.EngineConfig{Mode: "placeholder"}}, zap.NewNop())
	assert.Nil(t, engine)

	engine = provideItineraryEngine(lc, &config.Config{LLM: config.LLMConfig{Provider: "gemini"}}, zap.NewNop())
	assert.Nil(t, engine)
}

func TestEngineBuiltWithKey(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	cfg := &config.Config{
		LLM:    config.LLMConfig{Provider: "openai", OpenAIAPIKey: "k"},
		Engine: config.EngineConfig{Mode: "crew", MaxIterations: 3},
	}

	engine := provideItineraryEngine(lc, cfg, zap.NewNop())
	require.NotNil(t, engine)
	assert.Equal(t, "openai/gpt-4o-mini", engine.Name())
}
