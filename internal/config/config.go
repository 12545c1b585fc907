package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the chat service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chat-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	OpenAIAPIKey   string  `env:"OPENAI_API_KEY"`
	AssistantID    string  `env:"ASSISTANT_ID"`
	AssistantModel string  `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`
	AssistantTemp  float32 `env:"ASSISTANT_TEMPERATURE" envDefault:"0.7"`

	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"10"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`

	RunPollInterval    time.Duration `env:"RUN_POLL_INTERVAL" envDefault:"1s"`
	RunPollMaxAttempts int           `env:"RUN_POLL_MAX_ATTEMPTS" envDefault:"30"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if cfg.RateLimitMaxRequests <= 0 {
		cfg.RateLimitMaxRequests = 10
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = 60 * time.Second
	}
	if cfg.RunPollInterval <= 0 {
		cfg.RunPollInterval = time.Second
	}
	if cfg.RunPollMaxAttempts <= 0 {
		cfg.RunPollMaxAttempts = 30
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
