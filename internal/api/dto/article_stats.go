package dto

// ArticleStatsDTO 文章统计数据
// likes_count 在返回前经过校准，comments_count 永远实时计算
type ArticleStatsDTO struct {
	Views         int64 `json:"views"`
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
}

// ViewIncrementDTO 浏览数自增结果
// incrementAmount 不为 1 说明存储层丢失或重复了一次自增
type ViewIncrementDTO struct {
	Success         bool  `json:"success"`
	Views           int64 `json:"views"`
	IncrementAmount int64 `json:"incrementAmount"`
}
