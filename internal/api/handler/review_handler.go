package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// ReviewHandler 评价模块 HTTP 处理器
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Submit 提交 / 覆盖评价
// POST /api/v1/postings/:id/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reviewSvc.Submit(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostingNotFound):
			response.NotFound(c, 13002, "岗位不存在")
		case errors.Is(err, service.ErrReviewOwnPost):
			response.BadRequest(c, 14001, "不能评价自己发布的岗位")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ListByPosting 岗位评价列表
// GET /api/v1/postings/:id/reviews
func (h *ReviewHandler) ListByPosting(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.reviewSvc.ListByPosting(c.Request.Context(), c.Param("id"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, items, total, page.GetPage(), page.GetPageSize())
}

// Delete 删除评价（作者本人或管理员）
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.reviewSvc.Delete(c.Request.Context(), userID, c.Param("id"), IsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			response.NotFound(c, 14002, "评价不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
