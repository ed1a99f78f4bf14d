package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
	"time"
)

type ArticleMetricService interface {
	SyncArticleMetric(ctx context.Context, articleID uint64) error
	GetArticleMetrics(ctx context.Context, articleID uint64, limit int) ([]*model.ArticleMetric, error)
}

type articleMetricServiceImpl struct {
	metricRepo repository.ArticleMetricRepo
	actionRepo repository.ArticleActionRepo
}

func NewArticleMetricService(
	metricRepo repository.ArticleMetricRepo,
	actionRepo repository.ArticleActionRepo,
) ArticleMetricService {
	return &articleMetricServiceImpl{
		metricRepo: metricRepo,
		actionRepo: actionRepo,
	}
}

// SyncArticleMetric 以数据库实时计数为准落一份当天快照
func (s *articleMetricServiceImpl) SyncArticleMetric(ctx context.Context, articleID uint64) error {
	likes, err := s.actionRepo.GetLikeCountByArticleID(ctx, articleID)
	if err != nil {
		return err
	}
	comments, err := s.actionRepo.GetCommentCountByArticleID(ctx, articleID)
	if err != nil {
		return err
	}
	views, err := s.actionRepo.GetViewCountByArticleID(ctx, articleID)
	if err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return s.metricRepo.UpsertMetric(ctx, &model.ArticleMetric{
		ArticleID:     articleID,
		MetricDate:    today,
		TotalLikes:    likes,
		TotalComments: comments,
		TotalViews:    views,
	})
}

func (s *articleMetricServiceImpl) GetArticleMetrics(ctx context.Context, articleID uint64, limit int) ([]*model.ArticleMetric, error) {
	return s.metricRepo.GetMetrics(ctx, articleID, limit)
}
