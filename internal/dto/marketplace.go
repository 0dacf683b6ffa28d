package dto

// ── 市场预告模块 DTO ──

// SubscribeRequest 上线通知订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// MarketplaceFeedbackRequest 市场反馈请求（允许匿名）
type MarketplaceFeedbackRequest struct {
	Message string `json:"message" binding:"required,min=5,max=2000"`
}

// MarketplaceStatsResponse 订阅统计响应（管理端）
type MarketplaceStatsResponse struct {
	Subscribers int64 `json:"subscribers"`
	Feedback    int64 `json:"feedback"`
}
