package model

// Bookmark 岗位收藏表 — 对应 bookmarks
// (user_id, posting_id) 唯一
type Bookmark struct {
	BookmarkID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"bookmark_id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:unique_bookmark_pair" json:"user_id"`
	PostingID  string `gorm:"type:uuid;not null;uniqueIndex:unique_bookmark_pair" json:"posting_id"`
	BaseModel

	// 关联
	Posting *Posting `gorm:"foreignKey:PostingID;references:PostingID" json:"posting,omitempty"`
}

// TableName 指定表名
func (Bookmark) TableName() string { return "bookmarks" }
