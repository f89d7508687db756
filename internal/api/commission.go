package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespulse/internal/analytics"
	"salespulse/internal/model"
)

// GetCommission 周度分成核算
// GET /api/commission
// 人工修正在计算前套用；改完修正值重新 GET 即可，不需要重新加载工作簿。
func (h *Handler) GetCommission(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}

	cfg := h.analyticsConfig()
	rates := model.CommissionRates{
		CommissionPct: cfg.CommissionPct,
		CCFeePct:      cfg.CCFeePct,
		SalesTaxPct:   cfg.SalesTaxPct,
	}

	records := analytics.ComputeCommission(result.Daily, h.session.Overrides(), rates)

	c.JSON(http.StatusOK, gin.H{
		"rates": rates,
		"rows":  records,
	})
}

// OverridesResponse 人工修正表响应
type OverridesResponse struct {
	GetAppCreditCard map[string]float64 `json:"getAppCreditCard"`
	SalesTax         map[string]float64 `json:"salesTax"`
}

// GetOverrides 查看人工修正表
// GET /api/overrides
func (h *Handler) GetOverrides(c *gin.Context) {
	o := h.session.Overrides()
	c.JSON(http.StatusOK, OverridesResponse{
		GetAppCreditCard: o.GetAppCreditCard,
		SalesTax:         o.SalesTax,
	})
}

type putOverridesRequest struct {
	WeekLabel        string   `json:"weekLabel"`
	GetAppCreditCard *float64 `json:"getAppCreditCard"` // nil = 不改
	SalesTax         *float64 `json:"salesTax"`         // nil = 不改；0 = 删除修正，回落到推算
	Clear            bool     `json:"clear"`            // true = 清空全部修正
}

// PutOverrides 设置人工修正
// PUT /api/overrides
func (h *Handler) PutOverrides(c *gin.Context) {
	var req putOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	if req.Clear {
		h.session.ClearOverrides()
		c.JSON(http.StatusOK, gin.H{"cleared": true})
		return
	}

	if req.WeekLabel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少周标签"})
		return
	}
	if req.GetAppCreditCard != nil {
		h.session.SetGetAppCreditCard(req.WeekLabel, *req.GetAppCreditCard)
	}
	if req.SalesTax != nil {
		h.session.SetSalesTax(req.WeekLabel, *req.SalesTax)
	}

	o := h.session.Overrides()
	c.JSON(http.StatusOK, OverridesResponse{
		GetAppCreditCard: o.GetAppCreditCard,
		SalesTax:         o.SalesTax,
	})
}
