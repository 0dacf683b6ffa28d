package repository

import (
	"context"

	"gorm.io/gorm"

	"ppa-connect/backend/internal/model"
)

// MarketplaceRepository 集市预告数据访问接口
type MarketplaceRepository interface {
	CreateSubscription(ctx context.Context, sub *model.MarketplaceSubscription) error
	GetSubscriptionByEmail(ctx context.Context, email string) (*model.MarketplaceSubscription, error)
	CountSubscriptions(ctx context.Context) (int64, error)
	CreateFeedback(ctx context.Context, fb *model.MarketplaceFeedback) error
	CountFeedback(ctx context.Context) (int64, error)
}

// marketplaceRepo MarketplaceRepository 的 GORM 实现
type marketplaceRepo struct {
	db *gorm.DB
}

// NewMarketplaceRepo 创建 MarketplaceRepository 实例
func NewMarketplaceRepo(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepo{db: db}
}

func (r *marketplaceRepo) CreateSubscription(ctx context.Context, sub *model.MarketplaceSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *marketplaceRepo) GetSubscriptionByEmail(ctx context.Context, email string) (*model.MarketplaceSubscription, error) {
	var sub model.MarketplaceSubscription
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *marketplaceRepo) CountSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MarketplaceSubscription{}).Count(&count).Error
	return count, err
}

func (r *marketplaceRepo) CreateFeedback(ctx context.Context, fb *model.MarketplaceFeedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *marketplaceRepo) CountFeedback(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MarketplaceFeedback{}).Count(&count).Error
	return count, err
}
