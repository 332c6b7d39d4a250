package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Render    RenderConfig
	Agent     AgentConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// RenderConfig bounds the normalizer and renderer.
type RenderConfig struct {
	MaxDepth          int    `envconfig:"RENDER_MAX_DEPTH" default:"50"`
	DiscoveryMaxDepth int    `envconfig:"DISCOVERY_MAX_DEPTH" default:"5"`
	CatalogManifest   string `envconfig:"CATALOG_MANIFEST" default:""`
}

// AgentConfig holds the remote UI-generation agent settings.
type AgentConfig struct {
	URL          string        `envconfig:"AGENT_URL" default:""`
	PollInterval time.Duration `envconfig:"AGENT_POLL_INTERVAL" default:"1s"`
	Timeout      time.Duration `envconfig:"AGENT_TIMEOUT" default:"2m"`
	RPS          float64       `envconfig:"AGENT_RPS" default:"5"`
}

// Enabled reports whether an agent endpoint is configured.
func (a AgentConfig) Enabled() bool {
	return a.URL != ""
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the normalizer, agent client or limiter
// cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Render.MaxDepth <= 0:
		return fmt.Errorf("RENDER_MAX_DEPTH must be positive, got %d", c.Render.MaxDepth)
	case c.Render.DiscoveryMaxDepth < 0:
		return fmt.Errorf("DISCOVERY_MAX_DEPTH must not be negative, got %d", c.Render.DiscoveryMaxDepth)
	case len(c.Server.CORSOrigins) == 0:
		return fmt.Errorf("CORS_ORIGINS must name at least one origin")
	}
	if c.Agent.Enabled() {
		if c.Agent.PollInterval <= 0 || c.Agent.Timeout <= 0 {
			return fmt.Errorf("AGENT_POLL_INTERVAL and AGENT_TIMEOUT must be positive")
		}
		if c.Agent.PollInterval >= c.Agent.Timeout {
			return fmt.Errorf("AGENT_POLL_INTERVAL (%s) must be shorter than AGENT_TIMEOUT (%s)",
				c.Agent.PollInterval, c.Agent.Timeout)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 15 * time.Second,
		},
		Render: RenderConfig{
			MaxDepth:          50,
			DiscoveryMaxDepth: 5,
		},
		Agent: AgentConfig{
			PollInterval: time.Second,
			Timeout:      2 * time.Minute,
			RPS:          5,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
