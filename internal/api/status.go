package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Loaded       bool      `json:"loaded"`       // 是否已加载工作簿
	Path         string    `json:"path"`         // 当前工作簿路径
	LoadedAt     time.Time `json:"loadedAt"`     // 加载时间
	DayCount     int       `json:"dayCount"`     // 有效营业日数
	SlotCount    int       `json:"slotCount"`    // 时段行数
	SheetCount   int       `json:"sheetCount"`   // 工作簿 sheet 总数
	DroppedDates int       `json:"droppedDates"` // 日期解析失败被剔除的 sheet 数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	result := h.session.Current()
	if result == nil {
		c.JSON(http.StatusOK, StatusResponse{Loaded: false})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Loaded:       true,
		Path:         result.Path,
		LoadedAt:     result.LoadedAt,
		DayCount:     len(result.Daily.Rows),
		SlotCount:    len(result.Slots.Rows),
		SheetCount:   result.SheetCount,
		DroppedDates: result.DroppedDates,
	})
}
