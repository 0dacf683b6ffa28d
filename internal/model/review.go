package model

// Review 岗位评价表 — 对应 reviews
// 每个用户对同一岗位仅保留一条评价
type Review struct {
	ReviewID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"review_id"`
	PostingID string  `gorm:"type:uuid;not null;uniqueIndex:unique_review_user_posting" json:"posting_id"`
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex:unique_review_user_posting" json:"user_id"`
	Rating    int     `gorm:"not null"                                                  json:"rating"` // 1-5
	Comment   *string `gorm:"type:text"                                                 json:"comment,omitempty"`
	BaseModel

	// 关联
	Reviewer *User `gorm:"foreignKey:UserID;references:UserID" json:"reviewer,omitempty"`
}

// TableName 指定表名
func (Review) TableName() string { return "reviews" }
