package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		articleGroup := apiGroup.Group("/articles")
		{
			// 匿名可读，带合法 token 时注入 UID（匿名查询点赞态返回 false）
			optGroup := articleGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/:article_id/stats", group.ArticleStatsHandler.GetArticleStats)
				optGroup.GET("/:article_id/comments", group.ArticleActionHandler.GetComments)
				optGroup.POST("/batch/likes", group.ArticleActionHandler.GetBatchLikes)
				optGroup.GET("/:article_id/liked", group.ArticleActionHandler.IsLiked)

				// 浏览上报不要求登录，客户端防抖后调用
				optGroup.POST("/:article_id/views", group.ArticleStatsHandler.IncrementViews)
			}

			authGroup := articleGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:article_id/like", group.ArticleActionHandler.LikeArticle)
				authGroup.GET("/liked", group.ArticleActionHandler.GetLikedArticles)
				authGroup.POST("/comments", group.ArticleActionHandler.CreateComment)
				authGroup.DELETE("/comments/:comment_id", group.ArticleActionHandler.DeleteComment)
				authGroup.GET("/:article_id/metrics", group.ArticleStatsHandler.GetArticleMetrics)
			}
		}

		followGroup := apiGroup.Group("/user-relation")
		{
			followGroup.GET("/:user_id/counts", group.UserFollowHandler.GetFollowCounts)
			followGroup.GET("/:user_id/followers", group.UserFollowHandler.GetFollowers)
			followGroup.GET("/:user_id/followings", group.UserFollowHandler.GetFollowing)

			authGroup := followGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/toggle/:user_id", group.UserFollowHandler.ToggleFollow)
				authGroup.GET("/isfollow/:user_id", group.UserFollowHandler.IsFollowing)
				authGroup.GET("/recommend", group.UserFollowHandler.GetRecommendedUsers)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		{
			// WS 握手自行鉴权，token 走查询参数
			notifyGroup.GET("/ws", group.NotifyWsHandler.Connect)

			authGroup := notifyGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.NotificationHandler.GetNotifications)
				authGroup.GET("/unread/count", group.NotificationHandler.GetUnreadCount)
				authGroup.PUT("/:id/read", group.NotificationHandler.MarkAsRead)
				authGroup.PUT("/read-all", group.NotificationHandler.MarkAllAsRead)
			}
		}
	}

	return r
}
