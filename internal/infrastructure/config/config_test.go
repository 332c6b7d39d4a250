package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)

	// Render config
	assert.Equal(t, 50, cfg.Render.MaxDepth)
	assert.Equal(t, 5, cfg.Render.DiscoveryMaxDepth)
	assert.Empty(t, cfg.Render.CatalogManifest)

	// Agent config
	assert.False(t, cfg.Agent.Enabled())
	assert.Equal(t, time.Second, cfg.Agent.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Agent.Timeout)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                "9000",
		"HOST":                "127.0.0.1",
		"CORS_ORIGINS":        "https://a.example,https://b.example",
		"SHUTDOWN_TIMEOUT":    "5s",
		"RENDER_MAX_DEPTH":    "20",
		"DISCOVERY_MAX_DEPTH": "3",
		"CATALOG_MANIFEST":    "catalog.yaml",
		"AGENT_URL":           "http://agent:9100",
		"AGENT_POLL_INTERVAL": "250ms",
		"AGENT_TIMEOUT":       "30s",
		"AGENT_RPS":           "2.5",
		"LOG_LEVEL":           "debug",
		"LOG_DEV":             "true",
		"RATE_LIMIT_RPS":      "500",
		"RATE_LIMIT_BURST":    "1000",
		"RATE_LIMIT_ENABLED":  "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, 20, cfg.Render.MaxDepth)
	assert.Equal(t, 3, cfg.Render.DiscoveryMaxDepth)
	assert.Equal(t, "catalog.yaml", cfg.Render.CatalogManifest)

	assert.True(t, cfg.Agent.Enabled())
	assert.Equal(t, "http://agent:9100", cfg.Agent.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Agent.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Agent.Timeout)
	assert.InDelta(t, 2.5, cfg.Agent.RPS, 0.001)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric rate", key: "RATE_LIMIT_RPS", value: "lots"},
		{name: "bad duration", key: "AGENT_TIMEOUT", value: "soon"},
		{name: "zero depth", key: "RENDER_MAX_DEPTH", value: "0"},
		{name: "negative discovery depth", key: "DISCOVERY_MAX_DEPTH", value: "-1"},
		{name: "zero burst", key: "RATE_LIMIT_BURST", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestValidateAgentTimings(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	// Timings only matter once an agent is configured
	cfg.Agent.PollInterval = 0
	require.NoError(t, cfg.Validate())

	cfg.Agent.URL = "http://agent"
	assert.Error(t, cfg.Validate())

	cfg.Agent.PollInterval = 5 * time.Minute
	assert.ErrorContains(t, cfg.Validate(), "shorter than AGENT_TIMEOUT")

	cfg.Agent.PollInterval = time.Second
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}
