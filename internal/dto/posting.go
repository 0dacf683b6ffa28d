package dto

// ── 岗位模块 DTO ──

// CreatePostingRequest 发布岗位请求
type CreatePostingRequest struct {
	Name                   string `json:"name"                    binding:"required,min=2,max=200"`
	State                  string `json:"state"                   binding:"required,max=50"`
	LGA                    string `json:"lga"                     binding:"required,max=100"`
	Sector                 string `json:"sector"                  binding:"required,max=100"`
	Stipend                *int   `json:"stipend"                 binding:"omitempty,min=0"`
	AccommodationAvailable *bool  `json:"accommodation_available"`
	Description            string `json:"description"             binding:"omitempty,max=5000"`
	Contact                string `json:"contact"                 binding:"omitempty,max=200"`
	Address                string `json:"address"                 binding:"required,max=255"`
}

// UpdatePostingRequest 更新岗位请求（局部更新）
type UpdatePostingRequest struct {
	Name                   *string `json:"name"                    binding:"omitempty,min=2,max=200"`
	State                  *string `json:"state"                   binding:"omitempty,max=50"`
	LGA                    *string `json:"lga"                     binding:"omitempty,max=100"`
	Sector                 *string `json:"sector"                  binding:"omitempty,max=100"`
	Stipend                *int    `json:"stipend"                 binding:"omitempty,min=0"`
	AccommodationAvailable *bool   `json:"accommodation_available"`
	Description            *string `json:"description"             binding:"omitempty,max=5000"`
	Contact                *string `json:"contact"                 binding:"omitempty,max=200"`
	Address                *string `json:"address"                 binding:"omitempty,max=255"`
}

// PostingListRequest 岗位列表查询参数
type PostingListRequest struct {
	PaginationRequest
	State         string `form:"state"         binding:"omitempty,max=50"`
	LGA           string `form:"lga"           binding:"omitempty,max=100"`
	Sector        string `form:"sector"        binding:"omitempty,max=100"`
	MinStipend    *int   `form:"min_stipend"   binding:"omitempty,min=0"`
	Accommodation *bool  `form:"accommodation"`
	Keyword       string `form:"keyword"       binding:"omitempty,max=100"`
	Verified      *bool  `form:"verified"`
	PostedBy      string `form:"posted_by"     binding:"omitempty,uuid"`
}

// PostingResponse 岗位信息响应
type PostingResponse struct {
	PostingID              string  `json:"posting_id"`
	PostedBy               string  `json:"posted_by"`
	OwnerName              string  `json:"owner_name,omitempty"`
	Name                   string  `json:"name"`
	State                  string  `json:"state"`
	LGA                    string  `json:"lga"`
	Sector                 string  `json:"sector"`
	Stipend                *int    `json:"stipend,omitempty"`
	AccommodationAvailable *bool   `json:"accommodation_available,omitempty"`
	Description            string  `json:"description"`
	Contact                string  `json:"contact"`
	Address                string  `json:"address"`
	Verified               bool    `json:"verified"`
	VerificationStatus     string  `json:"verification_status"`
	AvgRating              float64 `json:"avg_rating"`
	ReviewCount            int64   `json:"review_count"`
	Bookmarked             bool    `json:"bookmarked"`
	CreatedAt              string  `json:"created_at"`
}

// SubmitVerificationRequest 提交核验文档请求（multipart 以外的元信息）
type SubmitVerificationRequest struct {
	DocumentType string `form:"document_type" binding:"omitempty,oneof=acceptance_letter utility_bill other"`
}

// VerificationResultResponse 核验结果响应
type VerificationResultResponse struct {
	PostingID          string `json:"posting_id"`
	VerificationStatus string `json:"verification_status"`
	Verified           bool   `json:"verified"`
}
