package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConfig 查看分析参数
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsConfig())
}

type updateConfigRequest struct {
	PeakTopPct    *float64 `json:"peakTopPct"`
	SlowBottomPct *float64 `json:"slowBottomPct"`
	CommissionPct *float64 `json:"commissionPct"`
	CCFeePct      *float64 `json:"ccFeePct"`
	SalesTaxPct   *float64 `json:"salesTaxPct"`
}

// UpdateConfig 调整分析参数 (带范围校验)
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	check := func(v *float64, min, max float64) bool {
		return v == nil || (*v >= min && *v <= max)
	}
	if !check(req.PeakTopPct, 1, 30) ||
		!check(req.SlowBottomPct, 1, 50) ||
		!check(req.CommissionPct, 0, 100) ||
		!check(req.CCFeePct, 0, 10) ||
		!check(req.SalesTaxPct, 0, 15) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数越界"})
		return
	}

	h.mu.Lock()
	a := &h.cfg.Analytics
	apply := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&a.PeakTopPct, req.PeakTopPct)
	apply(&a.SlowBottomPct, req.SlowBottomPct)
	apply(&a.CommissionPct, req.CommissionPct)
	apply(&a.CCFeePct, req.CCFeePct)
	apply(&a.SalesTaxPct, req.SalesTaxPct)
	snapshot := h.cfg.Analytics
	h.mu.Unlock()

	c.JSON(http.StatusOK, snapshot)
}
