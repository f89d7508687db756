package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salespulse/internal/analytics"
)

// GetWeekly 周度汇总 (周四~周三口径)
// GET /api/weekly
func (h *Handler) GetWeekly(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows": analytics.WeeklyStats(result.Daily, result.Slots),
	})
}

// GetDayOfWeek 星期对比
// GET /api/dayofweek
func (h *Handler) GetDayOfWeek(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows": analytics.DayOfWeekStats(result.Daily, result.Slots),
	})
}

// GetSlotAverages 跨天时段平均
// GET /api/slots/average
func (h *Handler) GetSlotAverages(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows": analytics.AverageBySlot(result.Slots),
	})
}

// GetDaySlots 单日时段钻取 (含忙闲分类)
// GET /api/days/:date/slots?top=10&bottom=20
// top/bottom 是百分数；不传时用配置里的默认阈值。
func (h *Handler) GetDaySlots(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}

	dateRaw := c.Param("date")
	rows := result.Slots.ByDate(dateRaw)
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "该日没有时段数据"})
		return
	}

	cfg := h.analyticsConfig()
	topPct := cfg.PeakTopPct
	bottomPct := cfg.SlowBottomPct
	if v, err := strconv.ParseFloat(c.Query("top"), 64); err == nil && v >= 1 && v <= 30 {
		topPct = v
	}
	if v, err := strconv.ParseFloat(c.Query("bottom"), 64); err == nil && v >= 1 && v <= 50 {
		bottomPct = v
	}

	classification := analytics.ClassifySlots(rows, topPct/100, bottomPct/100)

	c.JSON(http.StatusOK, gin.H{
		"date":           dateRaw,
		"topPct":         topPct,
		"bottomPct":      bottomPct,
		"classification": classification,
	})
}
