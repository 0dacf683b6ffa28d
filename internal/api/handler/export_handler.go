package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportLeaderboard 导出排行榜 Excel（管理端）
// GET /api/v1/admin/export/leaderboard
func (h *ExportHandler) ExportLeaderboard(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportLeaderboard(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportEmpty):
			response.NotFound(c, 19001, "排行榜暂无数据")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
