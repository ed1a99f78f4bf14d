package dto

// NotificationDTO 通知返回对象
// 列表在服务端补全发起者资料与文章标题，插入载荷不携带这些展示字段
type NotificationDTO struct {
	ID           string `json:"id"`
	Type         int8   `json:"type"` // 1-被关注, 2-文章点赞, 3-文章评论
	ActorID      uint64 `json:"actor_id"`
	ActorName    string `json:"actor_name"`
	AvatarURL    string `json:"avatar_url"`
	ArticleID    uint64 `json:"article_id,omitempty"`
	ArticleTitle string `json:"article_title,omitempty"`
	ArticleSlug  string `json:"article_slug,omitempty"`
	Content      string `json:"content"`
	IsRead       bool   `json:"is_read"`
	CreatedAt    string `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// NotificationEventDTO 推送给在线订阅的轻量事件
// 客户端收到后重新拉取补全列表，而不是直接信任该载荷
type NotificationEventDTO struct {
	ID        string `json:"id"`
	Type      int8   `json:"type"`
	ActorID   uint64 `json:"actor_id"`
	ArticleID uint64 `json:"article_id,omitempty"`
	CreatedAt string `json:"created_at"`
}
