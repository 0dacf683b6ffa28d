package model

import "time"

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Profile *UserProfile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// UserProfile 用户资料表 — 对应 user_profiles（与 users 1:1）
type UserProfile struct {
	UserID      string     `gorm:"type:uuid;primaryKey"       json:"user_id"`
	Bio         string     `gorm:"type:varchar(500);not null;default:''" json:"bio"`
	TwitterURL  string     `gorm:"type:varchar(255);not null;default:''" json:"twitter_url"`
	FacebookURL string     `gorm:"type:varchar(255);not null;default:''" json:"facebook_url"`
	IsPublic    bool       `gorm:"not null;default:true"      json:"is_public"` // 是否出现在排行榜
	NotifyFollow      bool `gorm:"not null;default:true"      json:"notify_follow"`
	NotifyRating      bool `gorm:"not null;default:true"      json:"notify_rating"`
	NotifyLeaderboard bool `gorm:"not null;default:true"      json:"notify_leaderboard"`
	NotifyPost        bool `gorm:"not null;default:true"      json:"notify_post"`
	LastSeen    *time.Time `gorm:"index"                      json:"last_seen,omitempty"`
	BaseModel
}

// TableName 指定表名
func (UserProfile) TableName() string { return "user_profiles" }

// IsOnline 最近 5 分钟内有活动视为在线
func (p *UserProfile) IsOnline(now time.Time) bool {
	if p.LastSeen == nil {
		return false
	}
	return now.Sub(*p.LastSeen) < 5*time.Minute
}
