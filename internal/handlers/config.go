package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
)

// ListConfig handles GET /api/v1/admin/config?path=...
func (h *Handlers) ListConfig(c *gin.Context) {
	path := c.Query("path")

	rows, err := h.configAdmin.Rows(c.Request.Context(), path)
	if err != nil {
		h.logger.Error("Failed to list config", logging.Fields{"path": path, "error": err.Error()})
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":   path,
		"values": rows,
	})
}

// SetConfig handles PUT /api/v1/admin/config
func (h *Handlers) SetConfig(c *gin.Context) {
	var req models.SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	value, err := h.configAdmin.SetValue(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Config updated", logging.Fields{
		"path":     value.Path,
		"scope":    value.Scope,
		"scope_id": value.ScopeID,
		"subject":  c.GetString("subject"),
	})
	c.JSON(http.StatusOK, value)
}
