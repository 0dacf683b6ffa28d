package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	PaginationRequest
	Type       string `form:"type"        binding:"omitempty,oneof=follow rating leaderboard post"`
	UnreadOnly bool   `form:"unread_only"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	NotificationID string   `json:"notification_id"`
	Type           string   `json:"type"`
	Message        string   `json:"message"`
	IsRead         bool     `json:"is_read"`
	URLs           []string `json:"urls,omitempty"` // data.urls 跳转链接
	CreatedAt      string   `json:"created_at"`
}

// UnreadCountResponse 未读数响应
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
