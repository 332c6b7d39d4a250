package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/pipeline"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// MaxBatchSize bounds the number of specs accepted by /render/batch
const MaxBatchSize = 100

// Handlers contains all HTTP handlers
type Handlers struct {
	pipeline *pipeline.Pipeline
	catalog  *registry.Registry
	metrics  *monitoring.Metrics
	hasher   *utils.Hasher
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(p *pipeline.Pipeline, catalog *registry.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		pipeline: p,
		catalog:  catalog,
		metrics:  metrics,
		hasher:   utils.DefaultHasher(),
		logger:   logger,
	}
}

// Health handles the health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"components": h.catalog.Len(),
		"frozen":     h.catalog.Frozen(),
		"agent":      gin.H{"configured": h.pipeline.HasAgent()},
	})
}

// Normalize returns the canonical form of the posted spec
func (h *Handlers) Normalize(c *gin.Context) {
	raw, ok := h.readJSON(c)
	if !ok {
		return
	}

	spec, err := h.pipeline.Normalize(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"fallback": h.pipeline.Normalizer().Fallback(err),
		})
		return
	}
	c.JSON(http.StatusOK, spec)
}

// Discover extracts every spec embedded in the posted document
func (h *Handlers) Discover(c *gin.Context) {
	raw, ok := h.readJSON(c)
	if !ok {
		return
	}

	specs := h.pipeline.Normalizer().Discover(raw)
	if specs == nil {
		specs = []*types.Spec{}
	}
	c.JSON(http.StatusOK, gin.H{
		"specs": specs,
		"count": len(specs),
	})
}

// Render renders the posted spec. With ?format=html the rendered page is
// returned instead of JSON.
func (h *Handlers) Render(c *gin.Context) {
	raw, ok := h.readJSON(c)
	if !ok {
		return
	}

	etag, err := h.hasher.ETag(raw)
	if err == nil {
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
	}

	result := h.pipeline.RenderRaw(raw)
	if c.Query("format") == "html" {
		title := c.DefaultQuery("title", result.Spec.Identifier)
		page := h.pipeline.Renderer().Page(title, result.Output)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		return
	}
	c.JSON(http.StatusOK, result)
}

// RenderBatch renders the posted array of specs as siblings
func (h *Handlers) RenderBatch(c *gin.Context) {
	raw, ok := h.readJSON(c)
	if !ok {
		return
	}

	items, isArray := raw.([]any)
	if !isArray {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON array of specs"})
		return
	}
	if len(items) > MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch exceeds maximum size"})
		return
	}

	results := h.pipeline.RenderBatch(items)
	fallbacks := 0
	for _, r := range results {
		if r.Fallback {
			fallbacks++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"outputs":   results,
		"count":     len(results),
		"fallbacks": fallbacks,
	})
}

// Generate asks the agent for a UI and renders it
func (h *Handlers) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePrompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, pipeline.ErrNoAgent) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("UI generation failed", zap.Error(err), zap.Int("status", status))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// readJSON reads and decodes the request body, answering 400 or 413 itself
// when it cannot
func (h *Handlers) readJSON(c *gin.Context) (any, bool) {
	data, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is empty"})
		return nil, false
	}

	raw, err := h.pipeline.Normalizer().DecodeRaw(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return raw, true
}
