package kafka

import (
	"Inkwell/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// LikesHandler 消费 likes 表的 CDC 事件
// 只维护计数缓存与脏集合，通知在动作落库时已经同步发出
type LikesHandler struct {
}

func NewLikesHandler() *LikesHandler {
	return &LikesHandler{}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("article like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("article like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return nil
	}

	// 点赞是物理增删，UPDATE 不会出现
	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 处理新增点赞：INCR + DIRTY
func (s *LikesHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		articleID := StrToUint64(row["article_id"])
		ExecAction(ctx, ActionParams{
			TargetID:       articleID,
			CountKeyPrefix: consts.ArticleLikeKey,
			DirtyKey:       consts.ArticleDirtyKey,
			IsIncrement:    true,
		})
		log.InfoContext(ctx, "article like inserted", "articleID", articleID)
	}
	return nil
}

// handleDelete 处理取消点赞：DECR + DIRTY
func (s *LikesHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		articleID := StrToUint64(row["article_id"])
		ExecAction(ctx, ActionParams{
			TargetID:       articleID,
			CountKeyPrefix: consts.ArticleLikeKey,
			DirtyKey:       consts.ArticleDirtyKey,
			IsIncrement:    false,
		})
		log.InfoContext(ctx, "article unlike processed", "articleID", articleID)
	}
	return nil
}
