package kafka

import (
	"Inkwell/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// CommentsHandler 消费 comments 表的 CDC 事件
// 评论走软删除，UPDATE 时根据 is_deleted 的前后值判断增减
type CommentsHandler struct {
}

func NewCommentsHandler() *CommentsHandler {
	return &CommentsHandler{}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("article comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("article comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return nil
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

func (s *CommentsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		articleID := StrToUint64(row["article_id"])
		ExecAction(ctx, ActionParams{
			TargetID:       articleID,
			CountKeyPrefix: consts.ArticleCommentKey,
			DirtyKey:       consts.ArticleDirtyKey,
			IsIncrement:    true,
		})
		log.InfoContext(ctx, "article comment inserted", "articleID", articleID)
	}
	return nil
}

// handleUpdate 软删除翻转时修正计数，其余字段更新忽略
func (s *CommentsHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	for i, row := range msg.Data {
		if i >= len(msg.Old) {
			break
		}
		if _, changed := msg.Old[i]["is_deleted"]; !changed {
			continue
		}

		articleID := StrToUint64(row["article_id"])
		deletedNow := row["is_deleted"] == "1"
		ExecAction(ctx, ActionParams{
			TargetID:       articleID,
			CountKeyPrefix: consts.ArticleCommentKey,
			DirtyKey:       consts.ArticleDirtyKey,
			IsIncrement:    !deletedNow,
		})
	}
	return nil
}

func (s *CommentsHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		articleID := StrToUint64(row["article_id"])
		if row["is_deleted"] == "1" {
			// 已软删除的行物理清理时计数不再变化
			continue
		}
		ExecAction(ctx, ActionParams{
			TargetID:       articleID,
			CountKeyPrefix: consts.ArticleCommentKey,
			DirtyKey:       consts.ArticleDirtyKey,
			IsIncrement:    false,
		})
	}
	return nil
}
