package dto

// ── 排行榜模块 DTO ──

// LeaderboardEntryResponse 排行榜单行响应
type LeaderboardEntryResponse struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	Username         string `json:"username"`
	Points           int    `json:"points"`
	TotalPostings    int    `json:"total_postings"`
	VerifiedPostings int    `json:"verified_postings"`
}

// LeaderboardResponse 排行榜响应
type LeaderboardResponse struct {
	Entries   []LeaderboardEntryResponse `json:"entries"`
	LastReset *string                    `json:"last_reset,omitempty"`
	Me        *LeaderboardEntryResponse  `json:"me,omitempty"` // 当前登录用户自己的名次
}

// ResetLeaderboardRequest 手动触发重置请求
type ResetLeaderboardRequest struct {
	Force bool `json:"force"` // 跳过周期检查，强制重置
}

// ResetLeaderboardResponse 重置结果响应
type ResetLeaderboardResponse struct {
	Performed bool   `json:"performed"`
	LastReset string `json:"last_reset,omitempty"`
	Notified  int    `json:"notified"` // 收到重置通知的用户数
}
