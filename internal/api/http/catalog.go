package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// Catalog lists registered component identifiers with statistics
func (h *Handlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"components": h.catalog.Names(),
		"stats":      h.catalog.Stats(),
	})
}

// Categories lists the categories in use
func (h *Handlers) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Categories(),
	})
}

// CategoryComponents lists the entries of one category
func (h *Handlers) CategoryComponents(c *gin.Context) {
	category := c.Param("category")
	if err := utils.ValidateCategory(category, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := h.catalog.ByCategory(category)
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category":   category,
		"components": entries,
	})
}

// Component describes one registered component
func (h *Handlers) Component(c *gin.Context) {
	name := c.Param("name")
	if err := utils.ValidateIdentifier(name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, ok := h.catalog.Entry(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "component not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}
