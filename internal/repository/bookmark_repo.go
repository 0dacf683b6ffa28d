package repository

import (
	"context"

	"gorm.io/gorm"

	"ppa-connect/backend/internal/model"
)

// BookmarkRepository 收藏数据访问接口
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	Delete(ctx context.Context, userID, postingID string) error
	Get(ctx context.Context, userID, postingID string) (*model.Bookmark, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Bookmark, int64, error)
}

// bookmarkRepo BookmarkRepository 的 GORM 实现
type bookmarkRepo struct {
	db *gorm.DB
}

// NewBookmarkRepo 创建 BookmarkRepository 实例
func NewBookmarkRepo(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *bookmarkRepo) Delete(ctx context.Context, userID, postingID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND posting_id = ?", userID, postingID).
		Delete(&model.Bookmark{}).Error
}

func (r *bookmarkRepo) Get(ctx context.Context, userID, postingID string) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND posting_id = ?", userID, postingID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Bookmark, int64, error) {
	var bookmarks []model.Bookmark
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Posting").Preload("Posting.Owner").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		return nil, 0, err
	}

	return bookmarks, total, nil
}
