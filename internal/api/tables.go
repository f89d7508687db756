package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespulse/internal/analytics"
)

// GetSummary 全局经营概览
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.Summarize(result.Daily, result.Slots))
}

// GetDaily 日度表 (附带时段统计)
// GET /api/daily
func (h *Handler) GetDaily(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":  result.Daily.Rows,
		"stats": analytics.DailyStats(result.Slots),
	})
}

// GetSlots 时段明细表
// GET /api/slots
func (h *Handler) GetSlots(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": result.Slots.Rows})
}
