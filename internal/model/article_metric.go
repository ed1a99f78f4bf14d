package model

import (
	"time"
)

type ArticleMetric struct {
	ID            uint64    `gorm:"primaryKey"`
	ArticleID     uint64    `gorm:"not null;index:idx_article_date,unique"`
	MetricDate    time.Time `gorm:"not null;index:idx_article_date,unique;column:metric_date"`
	TotalLikes    int64     `gorm:"not null;default:0"`
	TotalComments int64     `gorm:"not null;default:0"`
	TotalViews    int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (ArticleMetric) TableName() string {
	return "article_daily_metrics"
}
