package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// BookmarkHandler 收藏模块 HTTP 处理器
type BookmarkHandler struct {
	bookmarkSvc service.BookmarkService
}

// NewBookmarkHandler 创建 BookmarkHandler
func NewBookmarkHandler(bookmarkSvc service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkSvc: bookmarkSvc}
}

// Toggle 收藏 / 取消收藏岗位
// POST /api/v1/postings/:id/bookmark
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bookmarkSvc.Toggle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostingNotFound) {
			response.NotFound(c, 13002, "岗位不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 我的收藏列表
// GET /api/v1/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, total, err := h.bookmarkSvc.List(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, items, total, page.GetPage(), page.GetPageSize())
}
