package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Create(ctx context.Context, msg *NotificationModel) error
	List(ctx context.Context, targetID uint64, limit, offset int64) ([]*NotificationModel, error)
	MarkAsRead(ctx context.Context, targetID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, targetID uint64) error
	UnreadCount(ctx context.Context, targetID uint64) (int64, error)
	CountByTarget(ctx context.Context, targetID uint64) (int64, error)
	NthRecentCreatedAt(ctx context.Context, targetID uint64, n int64) (*NotificationModel, error)
	DeleteOlderThan(ctx context.Context, targetID uint64, cutoff *NotificationModel) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

// Create 插入新通知
func (s *notificationRepoImpl) Create(ctx context.Context, msg *NotificationModel) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// List 分页获取用户的通知列表 (按时间倒序)
func (s *notificationRepoImpl) List(ctx context.Context, targetID uint64, limit, offset int64) ([]*NotificationModel, error) {
	filter := bson.M{"target_id": targetID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*NotificationModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkAsRead 标记单条通知为已读
func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, targetID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrInvalidIndexValue
	}
	filter := bson.M{"_id": objectID, "target_id": targetID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 一键清除未读
func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, targetID uint64) error {
	filter := bson.M{"target_id": targetID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// UnreadCount 获取用户的未读通知总数
func (s *notificationRepoImpl) UnreadCount(ctx context.Context, targetID uint64) (int64, error) {
	filter := bson.M{"target_id": targetID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

// CountByTarget 获取用户的通知总数，用于保留策略判断
func (s *notificationRepoImpl) CountByTarget(ctx context.Context, targetID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"target_id": targetID})
}

// NthRecentCreatedAt 取按时间倒序第 n 条通知，作为裁剪分界
func (s *notificationRepoImpl) NthRecentCreatedAt(ctx context.Context, targetID uint64, n int64) (*NotificationModel, error) {
	filter := bson.M{"target_id": targetID}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(n - 1)

	var msg NotificationModel
	if err := s.col.FindOne(ctx, filter, opts).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteOlderThan 删除分界之前的所有通知
// 分界行自身保留；created_at 相同的行按 _id 再分，避免同一时间戳整批误删
func (s *notificationRepoImpl) DeleteOlderThan(ctx context.Context, targetID uint64, cutoff *NotificationModel) (int64, error) {
	filter := bson.M{
		"target_id": targetID,
		"$or": bson.A{
			bson.M{"created_at": bson.M{"$lt": cutoff.CreatedAt}},
			bson.M{"created_at": cutoff.CreatedAt, "_id": bson.M{"$lt": cutoff.ID}},
		},
	}
	result, err := s.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
