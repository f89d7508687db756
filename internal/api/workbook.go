package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"salespulse/internal/loader"
)

type loadWorkbookRequest struct {
	Path string `json:"path"`
}

type loadWorkbookResponse struct {
	LoadID       string `json:"loadId"`
	FromCache    bool   `json:"fromCache"`
	DayCount     int    `json:"dayCount"`
	SlotCount    int    `json:"slotCount"`
	SheetCount   int    `json:"sheetCount"`
	DroppedDates int    `json:"droppedDates"`
}

// LoadWorkbook 加载工作簿
// POST /api/workbook/load
// 文件缺失是硬错误；内容与上次相同时直接命中缓存，跳过解析。
func (h *Handler) LoadWorkbook(c *gin.Context) {
	var req loadWorkbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.Path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少工作簿路径"})
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在: " + req.Path})
		return
	}

	// 内容寻址缓存：同一份字节不重复解析
	contentKey, err := loader.HashFile(req.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取失败: " + err.Error()})
		return
	}

	var result *loader.Result
	fromCache := false
	if cached, err := h.store.GetCachedLoad(contentKey); err == nil && cached != nil {
		result = cached
		fromCache = true
	} else {
		result, err = loader.Load(req.Path, h.log)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "加载失败: " + err.Error()})
			return
		}
		if err := h.store.PutCachedLoad(result); err != nil {
			// 缓存写失败不影响本次加载
			h.log.Warnf("写入加载缓存失败: %v", err)
		}
	}

	h.session.SetCurrent(result)

	c.JSON(http.StatusOK, loadWorkbookResponse{
		LoadID:       result.LoadID,
		FromCache:    fromCache,
		DayCount:     len(result.Daily.Rows),
		SlotCount:    len(result.Slots.Rows),
		SheetCount:   result.SheetCount,
		DroppedDates: result.DroppedDates,
	})
}
