package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"salespulse/internal/config"
	"salespulse/internal/loader"
	"salespulse/internal/store"
)

// Handler API 处理器
type Handler struct {
	store   *store.Store
	session *store.Session
	log     *logrus.Logger

	mu  sync.RWMutex
	cfg *config.AppConfig

	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, session *store.Session, cfg *config.AppConfig, log *logrus.Logger) *Handler {
	return &Handler{
		store:     st,
		session:   session,
		log:       log,
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 工作簿加载
	router.POST("/workbook/load", h.LoadWorkbook)

	// 规范表与概览
	router.GET("/summary", h.GetSummary)
	router.GET("/daily", h.GetDaily)
	router.GET("/slots", h.GetSlots)

	// 派生视图
	router.GET("/weekly", h.GetWeekly)
	router.GET("/dayofweek", h.GetDayOfWeek)
	router.GET("/slots/average", h.GetSlotAverages)
	router.GET("/days/:date/slots", h.GetDaySlots)

	// 分成核算与人工修正
	router.GET("/commission", h.GetCommission)
	router.GET("/overrides", h.GetOverrides)
	router.PUT("/overrides", h.PutOverrides)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// analyticsConfig 取分析参数的快照
func (h *Handler) analyticsConfig() config.AnalyticsConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg.Analytics
}

// requireTables 取当前加载结果；没有可用数据时回 409 并返回 nil
// 规范表为空是所有派生视图的硬性前置失败 (不是静默空结果)。
func (h *Handler) requireTables(c *gin.Context) *loader.Result {
	result := h.session.Current()
	if result == nil || result.Daily.Empty() {
		c.JSON(http.StatusConflict, gin.H{"error": "没有可用数据，请先加载工作簿"})
		return nil
	}
	return result
}
