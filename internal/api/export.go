package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"salespulse/internal/analytics"
	"salespulse/internal/exporter"
	"salespulse/internal/model"
)

type exportRequest struct {
	// daily / slots / weekly / dayofweek / commission / day
	Table string `json:"table"`
	// csv (默认) / xlsx (仅 commission 支持)
	Format string `json:"format"`
	// Table=day 时必填：要导出的营业日
	Date string `json:"date"`
}

// Export 导出输出表
// POST /api/export
// 生成临时文件并返回带 TTL 的下载令牌，姿势同配置页的 Excel 导出。
func (h *Handler) Export(c *gin.Context) {
	result := h.requireTables(c)
	if result == nil {
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	cfg := h.analyticsConfig()

	var (
		data     []byte
		fileName string
		err      error
	)

	switch req.Table {
	case "daily":
		data, err = exporter.DailyCSV(result.Daily)
		fileName = "daily_stats.csv"
	case "slots":
		data, err = exporter.SlotsCSV(result.Slots)
		fileName = "slot_details.csv"
	case "weekly":
		data, err = exporter.WeeklyCSV(analytics.WeeklyStats(result.Daily, result.Slots))
		fileName = "weekly_stats.csv"
	case "dayofweek":
		data, err = exporter.DayOfWeekCSV(analytics.DayOfWeekStats(result.Daily, result.Slots))
		fileName = "dayofweek_stats.csv"
	case "day":
		rows := result.Slots.ByDate(req.Date)
		if len(rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "该日没有时段数据"})
			return
		}
		classification := analytics.ClassifySlots(rows, cfg.PeakTopPct/100, cfg.SlowBottomPct/100)
		data, err = exporter.DaySlotsCSV(classification.Labeled)
		fileName = fmt.Sprintf("%s_timeslots.csv", req.Date)
	case "commission":
		rates := model.CommissionRates{
			CommissionPct: cfg.CommissionPct,
			CCFeePct:      cfg.CCFeePct,
			SalesTaxPct:   cfg.SalesTaxPct,
		}
		records := analytics.ComputeCommission(result.Daily, h.session.Overrides(), rates)
		if req.Format == "xlsx" {
			h.exportCommissionXLSX(c, records, analytics.WeeklyStats(result.Daily, result.Slots))
			return
		}
		data, err = exporter.CommissionCSV(records)
		fileName = "weekly_commission.csv"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的导出表: " + req.Table})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("salespulse_export_%d_%s", time.Now().UnixNano(), fileName))
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		return
	}

	token := h.downloads.put(tempPath, fileName, "text/csv", 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
		"fileName":    fileName,
	})
}

// exportCommissionXLSX 分成核算的 Excel 报表导出
func (h *Handler) exportCommissionXLSX(c *gin.Context, records []*model.WeeklyCommissionRecord, weekly []*analytics.WeeklyStat) {
	f, err := exporter.CommissionWorkbook(records, weekly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报表失败: " + err.Error()})
		return
	}
	defer f.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("salespulse_export_%d_weekly_commission.xlsx", time.Now().UnixNano()))
	if err := f.SaveAs(tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, "weekly_commission.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
		"fileName":    "weekly_commission.xlsx",
	})
}

// DownloadExport 下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载已过期或不存在"})
		return
	}

	data, err := os.ReadFile(item.filePath)
	if err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取导出文件失败"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, item.fileName))
	c.Data(http.StatusOK, item.mimeType, data)

	// 一次性令牌：下载完即失效，临时文件顺手清掉
	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
