package model

// MarketplaceSubscription 集市上线订阅表 — 对应 marketplace_subscriptions
type MarketplaceSubscription struct {
	SubscriptionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subscription_id"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Notified       bool   `gorm:"not null;default:false"                         json:"notified"`
	BaseModel
}

// TableName 指定表名
func (MarketplaceSubscription) TableName() string { return "marketplace_subscriptions" }

// MarketplaceFeedback 集市反馈表 — 对应 marketplace_feedback
// 用户删号后保留反馈内容（user_id 置空）
type MarketplaceFeedback struct {
	FeedbackID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"feedback_id"`
	UserID     *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	Feedback   string  `gorm:"type:text;not null"                             json:"feedback"`
	IPAddress  *string `gorm:"type:varchar(45)"                               json:"ip_address,omitempty"`
	BaseModel
}

// TableName 指定表名
func (MarketplaceFeedback) TableName() string { return "marketplace_feedback" }
