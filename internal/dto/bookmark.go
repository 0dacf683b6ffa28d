package dto

// ── 收藏模块 DTO ──

// BookmarkResponse 收藏响应
type BookmarkResponse struct {
	BookmarkID string           `json:"bookmark_id"`
	Posting    *PostingResponse `json:"posting,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

// ToggleResponse 切换类操作（收藏/关注）的结果
type ToggleResponse struct {
	Active bool `json:"active"` // true=已建立，false=已取消
}
