package service

import (
	"go.uber.org/zap"

	"ppa-connect/backend/config"
	"ppa-connect/backend/internal/repository"
	"ppa-connect/backend/pkg/jwt"
	"ppa-connect/backend/pkg/ocr"
	"ppa-connect/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Posting      PostingService
	Verification VerificationService
	Review       ReviewService
	Follow       FollowService
	Leaderboard  LeaderboardService
	Notification NotificationService
	Bookmark     BookmarkService
	Marketplace  MarketplaceService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	jwtMgr *jwt.Manager,
	ocrEngine ocr.Engine,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(repo, rdb, logger)
	leaderboard := NewLeaderboardService(cfg, repo, notification, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, rdb, jwtMgr, logger),
		User:         NewUserService(repo, logger),
		Posting:      NewPostingService(repo, leaderboard, notification, logger),
		Verification: NewVerificationService(repo, leaderboard, ocrEngine, logger),
		Review:       NewReviewService(repo, notification, logger),
		Follow:       NewFollowService(repo, notification, logger),
		Leaderboard:  leaderboard,
		Notification: notification,
		Bookmark:     NewBookmarkService(repo, logger),
		Marketplace:  NewMarketplaceService(repo, logger),
		Export:       NewExportService(cfg, repo, logger),
	}
}
