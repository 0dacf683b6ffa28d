package model

// Follow 关注关系表 — 对应 follows
// (follower_id, followed_id) 有序对唯一，防止重复关注
type Follow struct {
	FollowID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"follow_id"`
	FollowerID string `gorm:"type:uuid;not null;uniqueIndex:unique_follow_pair" json:"follower_id"`
	FollowedID string `gorm:"type:uuid;not null;uniqueIndex:unique_follow_pair" json:"followed_id"`
	BaseModel

	// 关联
	Follower *User `gorm:"foreignKey:FollowerID;references:UserID" json:"follower,omitempty"`
	Followed *User `gorm:"foreignKey:FollowedID;references:UserID" json:"followed,omitempty"`
}

// TableName 指定表名
func (Follow) TableName() string { return "follows" }
