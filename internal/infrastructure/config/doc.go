// Package config loads service configuration from environment variables
// using envconfig. Every field has a default so the server starts with an
// empty environment; Default mirrors those defaults for tests and tools.
//
// Environment Variables:
//   - PORT, HOST: HTTP listener
//   - RENDER_MAX_DEPTH, DISCOVERY_MAX_DEPTH, CATALOG_MANIFEST: interpreter bounds
//   - AGENT_URL, AGENT_POLL_INTERVAL, AGENT_TIMEOUT, AGENT_RPS: agent client
//   - LOG_LEVEL, LOG_DEV: logging
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED: request limiting
package config
