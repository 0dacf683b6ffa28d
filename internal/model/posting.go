package model

// 核验状态枚举
const (
	VerificationNotSubmitted = "not_submitted"
	VerificationPending      = "pending"
	VerificationApproved     = "approved"
	VerificationRejected     = "rejected"
)

// Posting 岗位信息表 — 对应 postings
// (name, address) 全局唯一，防止同一岗位被重复发布
type Posting struct {
	PostingID              string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"posting_id"`
	PostedBy               string `gorm:"type:uuid;not null;index"                             json:"posted_by"`
	Name                   string `gorm:"type:varchar(200);not null;uniqueIndex:unique_posting_name_address" json:"name"`
	State                  string `gorm:"type:varchar(50);not null"                            json:"state"`
	LGA                    string `gorm:"type:varchar(100);not null;column:lga"                json:"lga"`
	Sector                 string `gorm:"type:varchar(100);not null"                           json:"sector"`
	Stipend                *int   `gorm:""                                                     json:"stipend,omitempty"`
	AccommodationAvailable *bool  `gorm:""                                                     json:"accommodation_available,omitempty"`
	Description            string `gorm:"type:text;not null;default:''"                        json:"description"`
	Contact                string `gorm:"type:varchar(200);not null;default:''"                json:"contact"`
	Address                string `gorm:"type:varchar(255);not null;uniqueIndex:unique_posting_name_address" json:"address"`
	IsApproved             bool   `gorm:"not null;default:true"                                json:"is_approved"`
	Verified               bool   `gorm:"not null;default:false"                               json:"verified"`
	VerificationStatus     string `gorm:"type:varchar(20);not null;default:'not_submitted'"    json:"verification_status"`
	BaseModel

	// 关联
	Owner   *User    `gorm:"foreignKey:PostedBy;references:UserID"    json:"owner,omitempty"`
	Reviews []Review `gorm:"foreignKey:PostingID;references:PostingID" json:"reviews,omitempty"`
}

// TableName 指定表名
func (Posting) TableName() string { return "postings" }

// CanSubmitVerification 仅 not_submitted / rejected 状态允许提交核验文档
func (p *Posting) CanSubmitVerification() bool {
	return p.VerificationStatus == VerificationNotSubmitted ||
		p.VerificationStatus == VerificationRejected
}

// [自证通过] internal/model/posting.go
