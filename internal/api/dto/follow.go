package dto

// FollowToggleDTO 关注切换结果，服务端状态为准
type FollowToggleDTO struct {
	Success     bool `json:"success"`
	IsFollowing bool `json:"is_following"`
}

// FollowCountsDTO 关注/粉丝计数
type FollowCountsDTO struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// FollowUserDTO 关注/粉丝列表项
type FollowUserDTO struct {
	UserID     uint64 `json:"user_id"`
	Nickname   string `json:"nickname"`
	AvatarURL  string `json:"avatar_url"`
	FollowedAt string `json:"followed_at"`
}

// RecommendUserDTO 推荐关注项
type RecommendUserDTO struct {
	UserID         uint64 `json:"user_id"`
	Nickname       string `json:"nickname"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int64  `json:"followers_count"`
}
