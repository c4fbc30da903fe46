package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "JETSETGO_"

// Version is stamped at build time with -ldflags "-X jetsetgo/internal/config.Version=<v>".
var Version = "dev"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	LLM       LLMConfig       `koanf:"llm"`
	Engine    EngineConfig    `koanf:"engine"`
	Tools     ToolsConfig     `koanf:"tools"`
	Storage   StorageConfig   `koanf:"storage"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Trip      TripConfig      `koanf:"trip"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	AllowOrigins    string        `koanf:"allow_origins"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, console
}

type LLMConfig struct {
	Provider     string  `koanf:"provider"` // gemini, openai
	Model        string  `koanf:"model"`
	APIKey       string  `koanf:"api_key"`
	GeminiAPIKey string  `koanf:"gemini_api_key"`
	OpenAIAPIKey string  `koanf:"openai_api_key"`
	BaseURL      string  `koanf:"base_url"`
	Temperature  float64 `koanf:"temperature"`
}

// Key returns the API key for the configured provider. An explicit llm.api_key wins over the
// provider specific variables.
func (c LLMConfig) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch strings.ToLower(c.Provider) {
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

type EngineConfig struct {
	// Mode is "crew" to run the agent pipeline or "placeholder" to force degraded mode.
	Mode          string        `koanf:"mode"`
	Timeout       time.Duration `koanf:"timeout"`
	MaxIterations int           `koanf:"max_iterations"`
}

type ToolsConfig struct {
	SerperAPIKey   string        `koanf:"serper_api_key"`
	SerperEndpoint string        `koanf:"serper_endpoint"`
	SearchResults  int           `koanf:"search_results"`
	ScrapeMaxChars int           `koanf:"scrape_max_chars"`
	HTTPTimeout    time.Duration `koanf:"http_timeout"`
}

type StorageConfig struct {
	PostgresURL string        `koanf:"postgres_url"`
	MemoryTTL   time.Duration `koanf:"memory_ttl"`
}

type TelemetryConfig struct {
	Exporter       string `koanf:"exporter"` // none, stdout, otlp
	OTLPEndpoint   string `koanf:"otlp_endpoint"`
	OTLPInsecure   bool   `koanf:"otlp_insecure"`
	ServiceName    string `koanf:"service_name"`
	ServiceVersion string `koanf:"service_version"` // defaults to Version
}

type TripConfig struct {
	MaxDays int `koanf:"max_days"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// unprefixed maps the conventional variable names used by deployments of this service.
var unprefixed = map[string]string{
	"PORT":           "server.port",
	"GEMINI_API_KEY": "llm.gemini_api_key",
	"OPENAI_API_KEY": "llm.openai_api_key",
	"SERPER_API_KEY": "tools.serper_api_key",
	"POSTGRES_URL":   "storage.postgres_url",
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             "8000",
		"server.shutdown_timeout": 10 * time.Second,
		"server.allow_origins":    "*",

		"log.level":  "info",
		"log.format": "json",

		"llm.provider":    "gemini",
		"llm.temperature": 0.7,

		"engine.mode":           "crew",
		"engine.timeout":        5 * time.Minute,
		"engine.max_iterations": 5,

		"tools.serper_endpoint":  "https://google.serper.dev/search",
		"tools.search_results":   5,
		"tools.scrape_max_chars": 8000,
		"tools.http_timeout":     20 * time.Second,

		"storage.memory_ttl": 24 * time.Hour,

		"telemetry.exporter":        "none",
		"telemetry.service_name":    "jetsetgo",
		"telemetry.service_version": Version,

		"trip.max_days": 60,
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env file and the
// process environment, in that order of precedence (last wins).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, err
		}
	}

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// .env is optional; real environment variables are never overridden by it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return unprefixed[s]
	}), nil); err != nil {
		return nil, err
	}

	// JETSETGO_LLM_API_KEY -> llm.api_key
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
