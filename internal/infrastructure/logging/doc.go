// Package logging builds the zap loggers used across the render service.
//
// Production loggers emit JSON; development loggers emit colored console
// lines at debug level. NewWriter targets an arbitrary io.Writer, which is
// how the CLI routes logs to its own stderr.
//
// Subsystems never share a logger directly. Each receives a named child
// from Component so output can be filtered by subsystem:
//
//	logger := logging.FromConfig("info", false)
//	reg := registry.New(logger.Component(logging.Registry))
//	rend := renderer.New(reg, renderer.WithLogger(logger.Component(logging.Renderer)))
package logging
