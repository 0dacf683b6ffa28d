package model

import "time"

// 积分权重：普通岗位 10 分，已核验岗位额外 20 分
const (
	PointsPerPosting         = 10
	PointsPerVerifiedPosting = 20
)

// LeaderboardEntry 排行榜条目表 — 对应 leaderboard_entries（与 users 1:1）
//
// 不变式: points = total_postings*10 + verified_postings*20，
// 每次岗位增删后从全量计数重算，绝不增量调整。
// last_notified_rank 持久化"上次通知过的名次"，
// 取代会话态以保证跨会话的通知连续性。
type LeaderboardEntry struct {
	UserID           string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	Points           int       `gorm:"not null;default:0"                 json:"points"`
	TotalPostings    int       `gorm:"not null;default:0"                 json:"total_postings"`
	VerifiedPostings int       `gorm:"not null;default:0"                 json:"verified_postings"`
	LastNotifiedRank *int      `gorm:""                                   json:"last_notified_rank,omitempty"`
	LastUpdated      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"last_updated"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (LeaderboardEntry) TableName() string { return "leaderboard_entries" }

// ComputePoints 按固定公式重算积分
func (e *LeaderboardEntry) ComputePoints() {
	e.Points = e.TotalPostings*PointsPerPosting + e.VerifiedPostings*PointsPerVerifiedPosting
}

// LeaderboardResetID 单例行固定主键
const LeaderboardResetID = 1

// LeaderboardReset 排行榜重置标记 — 对应 leaderboard_resets（单例行，懒创建）
type LeaderboardReset struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	LastReset *time.Time `gorm:""           json:"last_reset,omitempty"`
}

// TableName 指定表名
func (LeaderboardReset) TableName() string { return "leaderboard_resets" }

// InGraceWindow 上次重置距今是否仍在宽限期内（期内跳过积分重算）
func (r *LeaderboardReset) InGraceWindow(now time.Time, window time.Duration) bool {
	if r == nil || r.LastReset == nil {
		return false
	}
	return now.Before(r.LastReset.Add(window))
}

// [自证通过] internal/model/leaderboard.go
