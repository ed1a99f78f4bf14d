package dto

// ArticleActionReq 点赞通用请求
type ArticleActionReq struct {
	Action int `json:"action" binding:"required,oneof=1 2"` // 1:执行, 2:取消
}

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	ArticleID uint64 `json:"article_id" binding:"required"`
	Content   string `json:"content" binding:"required,max=1000"`
}

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID        uint64 `json:"id"`
	ArticleID uint64 `json:"article_id"`
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ArticleBatchLikesReq 批量获取点赞数请求
type ArticleBatchLikesReq struct {
	ArticleIDs []uint64 `json:"article_ids" binding:"required,min=1,max=100"`
}

// ArticleBatchLikesDTO 批量获取点赞数响应
type ArticleBatchLikesDTO struct {
	Likes map[uint64]int64 `json:"likes"`
}

// LikedArticleDTO 点赞列表项
type LikedArticleDTO struct {
	ArticleID  uint64 `json:"article_id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	LikesCount int64  `json:"likes_count"`
	CreatedAt  string `json:"created_at"`
}
