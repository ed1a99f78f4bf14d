package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel 通知收件箱模型
// 一次 关注/点赞/评论 事件写入一行，不做聚合
type NotificationModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TargetID  uint64             `bson:"target_id" json:"targetId"` // 消息接收者ID
	ActorID   uint64             `bson:"actor_id" json:"actorId"`   // 动作发起者ID
	Type      int8               `bson:"type" json:"type"`          // 通知类型: 1-被关注, 2-文章点赞, 3-文章评论
	ArticleID uint64             `bson:"article_id,omitempty" json:"articleId"`
	Content   string             `bson:"content" json:"content"` // 通知文案预览或评论片段
	IsRead    bool               `bson:"is_read" json:"isRead"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
