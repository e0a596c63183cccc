package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// RateTableSizer reports how many HSN codes the in-memory rate table holds.
type RateTableSizer interface {
	Size() int
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db    *sqlx.DB
	rates RateTableSizer
}

// NewHealthHandler creates a new HealthHandler. rates may be nil.
func NewHealthHandler(db *sqlx.DB, rates RateTableSizer) *HealthHandler {
	return &HealthHandler{db: db, rates: rates}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	body := gin.H{"status": "ok"}
	if h.rates != nil {
		body["hsn_codes"] = h.rates.Size()
	}
	c.JSON(http.StatusOK, body)
}
