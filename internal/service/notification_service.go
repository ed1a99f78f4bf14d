package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	log "log/slog"

	"github.com/goccy/go-json"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	Notify(ctx context.Context, targetID, actorID uint64, notifyType int8, articleID uint64, content string) error
	GetNotifications(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notifyRepo   mongo.NotificationRepo
	userRepo     repository.UserRepo
	articleRepo  repository.ArticleRepo
	retentionCap int64
}

func NewNotificationService(
	notifyRepo mongo.NotificationRepo,
	userRepo repository.UserRepo,
	articleRepo repository.ArticleRepo,
	cfg *config.NotificationConfig,
) NotificationService {
	return &notificationServiceImpl{
		notifyRepo:   notifyRepo,
		userRepo:     userRepo,
		articleRepo:  articleRepo,
		retentionCap: cfg.RetentionCap,
	}
}

// Notify 写入收件箱、裁剪超量旧通知、向在线订阅推送
// 自己触发自己的动作由调用方过滤，这里不重复判断
func (s *notificationServiceImpl) Notify(ctx context.Context, targetID, actorID uint64, notifyType int8, articleID uint64, content string) error {
	msg := &mongo.NotificationModel{
		TargetID:  targetID,
		ActorID:   actorID,
		Type:      notifyType,
		ArticleID: articleID,
		Content:   content,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.notifyRepo.Create(ctx, msg); err != nil {
		return err
	}

	s.pruneInbox(ctx, targetID)
	s.publishEvent(ctx, msg)
	return nil
}

// pruneInbox 插入后检查总量，超过保留上限时删掉第 cap 条之前的所有通知
// 裁剪失败只记录日志，新通知已经落库
func (s *notificationServiceImpl) pruneInbox(ctx context.Context, targetID uint64) {
	count, err := s.notifyRepo.CountByTarget(ctx, targetID)
	if err != nil {
		log.Error("统计通知总量失败", "target_id", targetID, "error", err)
		return
	}
	if count <= s.retentionCap {
		return
	}

	cutoff, err := s.notifyRepo.NthRecentCreatedAt(ctx, targetID, s.retentionCap)
	if err != nil {
		if !errors.Is(err, mongodriver.ErrNoDocuments) {
			log.Error("查询裁剪分界失败", "target_id", targetID, "error", err)
		}
		return
	}
	deleted, err := s.notifyRepo.DeleteOlderThan(ctx, targetID, cutoff)
	if err != nil {
		log.Error("裁剪通知失败", "target_id", targetID, "error", err)
		return
	}
	log.Debug("裁剪通知完成", "target_id", targetID, "deleted", deleted)
}

func (s *notificationServiceImpl) publishEvent(ctx context.Context, msg *mongo.NotificationModel) {
	event := &dto.NotificationEventDTO{
		ID:        msg.ID.Hex(),
		Type:      msg.Type,
		ActorID:   msg.ActorID,
		ArticleID: msg.ArticleID,
		CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("序列化通知事件失败", "error", err)
		return
	}
	channel := consts.NotifyChannelKey + strconv.FormatUint(msg.TargetID, 10)
	if err := redis.Publish(ctx, channel, payload); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.Warn("推送通知事件失败", "channel", channel, "error", err)
	}
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	msgs, err := s.notifyRepo.List(ctx, userID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []*dto.NotificationDTO{}, nil
	}

	actorIDs := make([]uint64, 0, len(msgs))
	articleIDs := make([]uint64, 0, len(msgs))
	for _, m := range msgs {
		actorIDs = append(actorIDs, m.ActorID)
		if m.ArticleID != 0 {
			articleIDs = append(articleIDs, m.ArticleID)
		}
	}

	userMap := s.loadUsers(ctx, actorIDs)
	articleMap := s.loadArticles(ctx, articleIDs)

	list := make([]*dto.NotificationDTO, 0, len(msgs))
	for _, m := range msgs {
		item := &dto.NotificationDTO{
			ID:        m.ID.Hex(),
			Type:      m.Type,
			ActorID:   m.ActorID,
			ArticleID: m.ArticleID,
			Content:   m.Content,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u, ok := userMap[m.ActorID]; ok {
			item.ActorName = u.Nickname
			item.AvatarURL = u.AvatarURL
		}
		if a, ok := articleMap[m.ArticleID]; ok {
			item.ArticleTitle = a.Title
			item.ArticleSlug = a.Slug
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *notificationServiceImpl) loadUsers(ctx context.Context, userIDs []uint64) map[uint64]*model.User {
	result := make(map[uint64]*model.User)
	if len(userIDs) == 0 {
		return result
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		log.Warn("补全通知发起者资料失败", "error", err)
		return result
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result
}

func (s *notificationServiceImpl) loadArticles(ctx context.Context, articleIDs []uint64) map[uint64]*model.Article {
	result := make(map[uint64]*model.Article)
	if len(articleIDs) == 0 {
		return result
	}
	articles, err := s.articleRepo.GetArticlesByIDs(ctx, articleIDs)
	if err != nil {
		log.Warn("补全通知文章信息失败", "error", err)
		return result
	}
	for _, a := range articles {
		result[a.ID] = a
	}
	return result
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.notifyRepo.UnreadCount(ctx, userID)
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	err := s.notifyRepo.MarkAsRead(ctx, userID, msgID)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return ErrNotificationMissing
		}
		if errors.Is(err, mongodriver.ErrInvalidIndexValue) {
			return ErrParamInvalid
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.notifyRepo.MarkAllAsRead(ctx, userID)
}
