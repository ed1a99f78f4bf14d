package repository

import (
	"Inkwell/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleMetricRepo interface {
	UpsertMetric(ctx context.Context, metric *model.ArticleMetric) error
	GetMetrics(ctx context.Context, articleID uint64, limit int) ([]*model.ArticleMetric, error)
}

type ArticleMetricRepoImpl struct {
	db *gorm.DB
}

func NewArticleMetricRepo(db *gorm.DB) ArticleMetricRepo {
	return &ArticleMetricRepoImpl{db}
}

// UpsertMetric 同一文章同一天的快照覆盖写
func (s *ArticleMetricRepoImpl) UpsertMetric(ctx context.Context, metric *model.ArticleMetric) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_id"}, {Name: "metric_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_views", "total_likes", "total_comments"}),
		}).
		Create(metric).Error
}

func (s *ArticleMetricRepoImpl) GetMetrics(ctx context.Context, articleID uint64, limit int) ([]*model.ArticleMetric, error) {
	var metrics []*model.ArticleMetric
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("metric_date DESC").
		Limit(limit).
		Find(&metrics).Error
	return metrics, err
}
