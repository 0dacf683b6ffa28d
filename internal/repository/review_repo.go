package repository

import (
	"context"

	"gorm.io/gorm"

	"ppa-connect/backend/internal/model"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, reviewID string) error
	GetByID(ctx context.Context, reviewID string) (*model.Review, error)
	GetByUserAndPosting(ctx context.Context, userID, postingID string) (*model.Review, error)
	ListByPosting(ctx context.Context, postingID string, offset, limit int) ([]model.Review, int64, error)
	// Stats 返回岗位的平均评分与评价条数
	Stats(ctx context.Context, postingID string) (avg float64, count int64, err error)
}

// reviewRepo ReviewRepository 的 GORM 实现
type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepo) Delete(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&model.Review{}).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, reviewID string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) GetByUserAndPosting(ctx context.Context, userID, postingID string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND posting_id = ?", userID, postingID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ListByPosting(ctx context.Context, postingID string, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("posting_id = ?", postingID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Reviewer").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepo) Stats(ctx context.Context, postingID string) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("posting_id = ?", postingID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
