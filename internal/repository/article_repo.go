package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepo interface {
	GetArticle(ctx context.Context, articleID uint64) (*model.Article, error)
	GetArticlesByIDs(ctx context.Context, articleIDs []uint64) ([]*model.Article, error)
	IncrementViews(ctx context.Context, articleID uint64) (before int64, after int64, err error)
	UpdateLikesCount(ctx context.Context, articleID uint64, count int64) error
}

type ArticleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepo {
	return &ArticleRepoImpl{db: db}
}

func (s *ArticleRepoImpl) GetArticle(ctx context.Context, articleID uint64) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", articleID, false).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleRepoImpl) GetArticlesByIDs(ctx context.Context, articleIDs []uint64) ([]*model.Article, error) {
	var articles []*model.Article
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", articleIDs, false).
		Find(&articles).Error
	return articles, err
}

// IncrementViews 在单个事务内对浏览数原子加一并返回新值
// 行锁保证并发调用不会基于同一个旧值各写 base+1，返回值对 (before, after)
// 让调用方可以断言本次恰好加了 1
func (s *ArticleRepoImpl) IncrementViews(ctx context.Context, articleID uint64) (int64, int64, error) {
	var before, after int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article model.Article
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_deleted = ?", articleID, false).
			First(&article).Error; err != nil {
			return err
		}
		before = article.Views

		if err := tx.Model(&model.Article{}).
			Where("id = ?", articleID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return err
		}

		// 回读落库后的值而不是用 before+1 推算
		// 两者之差就是本次真正生效的增量，存储层异常时不再被掩盖
		var updated model.Article
		if err := tx.Select("views").
			Where("id = ?", articleID).
			First(&updated).Error; err != nil {
			return err
		}
		after = updated.Views
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return before, after, nil
}

// UpdateLikesCount 校准冗余的点赞计数
func (s *ArticleRepoImpl) UpdateLikesCount(ctx context.Context, articleID uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("likes_count", count).Error
}
