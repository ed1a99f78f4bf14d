package consts

const (
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	ArticleDirtyKey       = "article:dirty"
	ArticleLikeKey        = "article:like:"
	ArticleCommentKey     = "article:comment:"
	ArticleViewKey        = "article:view:"
	ArticleMetricLockKey  = "article:metric:lock"
	NotifyChannelKey      = "notify:user:"
)
