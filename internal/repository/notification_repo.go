package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ppa-connect/backend/internal/dto"
	"ppa-connect/backend/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// FindByKey 按 (user_id, type, message) 幂等键查询已存在的通知
	FindByKey(ctx context.Context, userID, typ, message string) (*model.Notification, error)
	// UpdateData 回填链接负载（幂等投递命中时仅补缺失的 data）
	UpdateData(ctx context.Context, notificationID string, data model.JSONMap) error
	List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	// DeleteExpired 清除某用户已读且超过保留期的通知
	DeleteExpired(ctx context.Context, userID string, readBefore time.Time) (int64, error)
	// DeleteExpiredAll 全局清除过期通知，供定时清扫任务使用
	DeleteExpiredAll(ctx context.Context, readBefore time.Time) (int64, error)
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) FindByKey(ctx context.Context, userID, typ, message string) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND message = ?", userID, typ, message).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) UpdateData(ctx context.Context, notificationID string, data model.JSONMap) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("notification_id = ?", notificationID).
		Update("data", data).Error
}

func (r *notificationRepo) List(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ?", userID)

	if req.Type != "" {
		db = db.Where("type = ?", req.Type)
	}
	if req.UnreadOnly {
		db = db.Where("is_read = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(req.GetOffset()).Limit(req.GetPageSize()).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID, notificationID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) DeleteExpired(ctx context.Context, userID string, readBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ? AND created_at < ?", userID, true, readBefore).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) DeleteExpiredAll(ctx context.Context, readBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, readBefore).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/notification_repo.go
