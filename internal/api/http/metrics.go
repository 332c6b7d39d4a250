package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// MetricsSnapshot is the JSON view of the service metrics
type MetricsSnapshot struct {
	Timestamp time.Time           `json:"timestamp"`
	Render    monitoring.Snapshot `json:"render"`
	Catalog   types.CatalogStats  `json:"catalog"`
	Summary   MetricsSummary      `json:"summary"`
}

// MetricsSummary provides high-level ratios
type MetricsSummary struct {
	TotalRequests   int64   `json:"total_requests"`
	ErrorRate       float64 `json:"error_rate"`
	PlaceholderRate float64 `json:"placeholder_rate"`
	AverageRenderMs float64 `json:"average_render_ms"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// MetricsJSON returns the metrics snapshot as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, MetricsSnapshot{
		Timestamp: time.Now(),
		Render:    snap,
		Catalog:   h.catalog.Stats(),
		Summary:   summarize(snap),
	})
}

func summarize(snap monitoring.Snapshot) MetricsSummary {
	summary := MetricsSummary{
		TotalRequests:   snap.TotalRequests,
		AverageRenderMs: snap.AverageRenderMs,
		UptimeSeconds:   snap.UptimeSeconds,
	}
	if snap.TotalRequests > 0 {
		summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}
	if nodes := snap.NodesRendered + snap.NodesFallback + snap.NodesFailed; nodes > 0 {
		summary.PlaceholderRate = float64(snap.NodesFallback+snap.NodesFailed) / float64(nodes)
	}
	return summary
}
