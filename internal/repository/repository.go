package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Posting      PostingRepository
	Review       ReviewRepository
	Follow       FollowRepository
	Leaderboard  LeaderboardRepository
	Notification NotificationRepository
	Bookmark     BookmarkRepository
	Marketplace  MarketplaceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Posting:      NewPostingRepo(db),
		Review:       NewReviewRepo(db),
		Follow:       NewFollowRepo(db),
		Leaderboard:  NewLeaderboardRepo(db),
		Notification: NewNotificationRepo(db),
		Bookmark:     NewBookmarkRepo(db),
		Marketplace:  NewMarketplaceRepo(db),
	}
}

// Transaction 在单个数据库事务内执行 fn，
// fn 收到的聚合实例绑定事务连接，FOR UPDATE 行锁依赖此机制生效。
// 无底层连接（字面量构造的测试替身）时退化为在当前聚合上直接执行。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
