package handler

import "ppa-connect/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Posting      *PostingHandler
	Review       *ReviewHandler
	Leaderboard  *LeaderboardHandler
	Notification *NotificationHandler
	Bookmark     *BookmarkHandler
	Marketplace  *MarketplaceHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User, svc.Follow),
		Posting:      NewPostingHandler(svc.Posting, svc.Verification),
		Review:       NewReviewHandler(svc.Review),
		Leaderboard:  NewLeaderboardHandler(svc.Leaderboard),
		Notification: NewNotificationHandler(svc.Notification),
		Bookmark:     NewBookmarkHandler(svc.Bookmark),
		Marketplace:  NewMarketplaceHandler(svc.Marketplace),
		Export:       NewExportHandler(svc.Export),
	}
}
