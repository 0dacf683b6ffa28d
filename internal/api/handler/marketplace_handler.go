package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// MarketplaceHandler 集市预告模块 HTTP 处理器
type MarketplaceHandler struct {
	marketplaceSvc service.MarketplaceService
}

// NewMarketplaceHandler 创建 MarketplaceHandler
func NewMarketplaceHandler(marketplaceSvc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceSvc: marketplaceSvc}
}

// Subscribe 订阅集市上线通知
// POST /api/v1/marketplace/subscribe
func (h *MarketplaceHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.marketplaceSvc.Subscribe(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			response.Conflict(c, 18001, "该邮箱已订阅")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, nil)
}

// SubmitFeedback 提交集市反馈（允许匿名）
// POST /api/v1/marketplace/feedback
func (h *MarketplaceHandler) SubmitFeedback(c *gin.Context) {
	var req dto.MarketplaceFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.marketplaceSvc.SubmitFeedback(c.Request.Context(), GetOptionalUserID(c), req.Message, c.ClientIP())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, nil)
}

// Stats 订阅统计（管理端）
// GET /api/v1/admin/marketplace/stats
func (h *MarketplaceHandler) Stats(c *gin.Context) {
	result, err := h.marketplaceSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
