package dto

// ── 用户与资料模块 DTO ──

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Bio         *string `json:"bio"          binding:"omitempty,max=500"`
	TwitterURL  *string `json:"twitter_url"  binding:"omitempty,url,max=255"`
	FacebookURL *string `json:"facebook_url" binding:"omitempty,url,max=255"`
	IsPublic    *bool   `json:"is_public"`
}

// UpdateNotifyPrefsRequest 更新通知偏好请求
type UpdateNotifyPrefsRequest struct {
	NotifyFollow      *bool `json:"notify_follow"`
	NotifyRating      *bool `json:"notify_rating"`
	NotifyLeaderboard *bool `json:"notify_leaderboard"`
	NotifyPost        *bool `json:"notify_post"`
}

// ProfileResponse 个人资料响应
type ProfileResponse struct {
	UserID            string `json:"user_id"`
	Username          string `json:"username"`
	Bio               string `json:"bio,omitempty"`
	TwitterURL        string `json:"twitter_url,omitempty"`
	FacebookURL       string `json:"facebook_url,omitempty"`
	IsPublic          bool   `json:"is_public"`
	IsOnline          bool   `json:"is_online"`
	NotifyFollow      bool   `json:"notify_follow"`
	NotifyRating      bool   `json:"notify_rating"`
	NotifyLeaderboard bool   `json:"notify_leaderboard"`
	NotifyPost        bool   `json:"notify_post"`
	Followers         int64  `json:"followers"`
	Following         int64  `json:"following"`
}

// PublicProfileResponse 公开资料响应（他人视角，按 is_public 脱敏）
type PublicProfileResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Bio         string `json:"bio,omitempty"`
	TwitterURL  string `json:"twitter_url,omitempty"`
	FacebookURL string `json:"facebook_url,omitempty"`
	IsOnline    bool   `json:"is_online"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
	IsFollowing bool   `json:"is_following"`
}
