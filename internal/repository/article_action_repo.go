package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ArticleActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, articleID uint64) error
	CheckLikeExists(ctx context.Context, userID, articleID uint64) (bool, error)
	GetLikeCountByArticleID(ctx context.Context, articleID uint64) (int64, error)
	GetLikedArticleIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByArticleID(ctx context.Context, articleID uint64, limit, offset int) ([]*model.Comment, error)
	GetCommentCountByArticleID(ctx context.Context, articleID uint64) (int64, error)

	GetViewCountByArticleID(ctx context.Context, articleID uint64) (int64, error)
}

type ArticleActionRepoImpl struct {
	db *gorm.DB
}

func NewArticleActionRepo(db *gorm.DB) ArticleActionRepo {
	return &ArticleActionRepoImpl{db}
}

func (s *ArticleActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *ArticleActionRepoImpl) DeleteLike(ctx context.Context, userID, articleID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.Like{}).Error
}

func (s *ArticleActionRepoImpl) CheckLikeExists(ctx context.Context, userID, articleID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// GetLikeCountByArticleID 点赞表是计数的事实来源
func (s *ArticleActionRepoImpl) GetLikeCountByArticleID(ctx context.Context, articleID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

func (s *ArticleActionRepoImpl) GetLikedArticleIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var articleIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("article_id", &articleIDs).Error
	return articleIDs, err
}

func (s *ArticleActionRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// DeleteComment 软删除，实时评论计数只统计未删除行
func (s *ArticleActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Update("is_deleted", true).Error
}

func (s *ArticleActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (s *ArticleActionRepoImpl) GetCommentsByArticleID(ctx context.Context, articleID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("article_id = ? AND is_deleted = ?", articleID, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *ArticleActionRepoImpl) GetCommentCountByArticleID(ctx context.Context, articleID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("article_id = ? AND is_deleted = ?", articleID, false).
		Count(&count).Error
	return count, err
}

// GetViewCountByArticleID 供指标任务快照使用，读 articles.views
func (s *ArticleActionRepoImpl) GetViewCountByArticleID(ctx context.Context, articleID uint64) (int64, error) {
	var views int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", articleID).
		Pluck("views", &views).Error
	return views, err
}
