// Package main is the entry point for the UI specification render server.
//
// The server normalizes loosely structured UI specifications, renders them
// through the built-in component catalog, and optionally asks a remote
// agent to generate new ones.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags override the listener port and logging mode
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
