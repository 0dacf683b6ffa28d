package dto

// ── 评价模块 DTO ──

// SubmitReviewRequest 提交评价请求（同一用户对同一岗位仅一条，重复提交覆盖）
type SubmitReviewRequest struct {
	Rating  int     `json:"rating"  binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewResponse 评价响应
type ReviewResponse struct {
	ReviewID  string  `json:"review_id"`
	PostingID string  `json:"posting_id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username,omitempty"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
}
