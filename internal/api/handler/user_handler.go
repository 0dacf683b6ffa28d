package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/service"
	"ppa-connect/backend/pkg/response"
)

// UserHandler 用户资料模块 HTTP 处理器
type UserHandler struct {
	userSvc   service.UserService
	followSvc service.FollowService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, followSvc service.FollowService) *UserHandler {
	return &UserHandler{userSvc: userSvc, followSvc: followSvc}
}

// GetMyProfile 获取自己的资料
// GET /api/v1/users/me/profile
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateMyProfile 更新自己的资料
// PUT /api/v1/users/me/profile
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// UpdateNotifyPrefs 更新通知偏好
// PUT /api/v1/users/me/notify-prefs
func (h *UserHandler) UpdateNotifyPrefs(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNotifyPrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.UpdateNotifyPrefs(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetPublicProfile 查看他人资料
// GET /api/v1/users/:id/profile
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	targetID := c.Param("id")
	viewerID := GetOptionalUserID(c)

	result, err := h.userSvc.GetPublicProfile(c.Request.Context(), viewerID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrProfilePrivate):
			response.Forbidden(c, 12002, "该用户资料未公开")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// ToggleFollow 关注 / 取消关注
// POST /api/v1/users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	result, err := h.followSvc.Toggle(c.Request.Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.BadRequest(c, 12003, "不能关注自己")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}
