package model

import "time"

// 通知类型枚举
const (
	NotificationTypeFollow      = "follow"
	NotificationTypeRating      = "rating"
	NotificationTypeLeaderboard = "leaderboard"
	NotificationTypePost        = "post"
)

// NotificationReadTTL 已读通知保留时长，超过后惰性清除
const NotificationReadTTL = 24 * time.Hour

// Notification 通知消息表 — 对应 notifications
// 以 (user_id, type, message) 作为幂等投递键：
// 重复触发只回填缺失的链接负载，不产生第二条记录
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null;index:idx_notifications_inbox" json:"user_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Message        string  `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool    `gorm:"not null;default:false;index:idx_notifications_inbox" json:"is_read"`
	Data           JSONMap `gorm:"type:jsonb"                                     json:"data,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_notifications_inbox" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// IsExpired 已读且创建超过 24 小时视为过期，可被清除
func (n *Notification) IsExpired(now time.Time) bool {
	if !n.IsRead {
		return false
	}
	return now.After(n.CreatedAt.Add(NotificationReadTTL))
}
