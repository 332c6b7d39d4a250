/*
Package monitoring provides metrics collection for the render service.

# Overview

Metrics are held in a per-instance Prometheus registry, so every server (and
every test) owns an independent set. The same collector satisfies the
renderer's Recorder interface.

# Metrics

- HTTP request metrics (latency, throughput, size)
- uirender_nodes_rendered_total{identifier,status}
- uirender_normalize_total{result}
- uirender_render_duration_seconds
- uirender_catalog_components
- uirender_agent_jobs_total{status}
- WebSocket connection and message metrics
- uptime, Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	r := renderer.New(reg, renderer.WithRecorder(metrics))
*/
package monitoring
