package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"strconv"

	log "log/slog"
)

type ArticleStatsService interface {
	GetArticleStats(ctx context.Context, articleID uint64) (*dto.ArticleStatsDTO, error)
	IncrementViews(ctx context.Context, articleID uint64) (*dto.ViewIncrementDTO, error)
}

type articleStatsServiceImpl struct {
	articleRepo repository.ArticleRepo
	actionRepo  repository.ArticleActionRepo
}

func NewArticleStatsService(
	articleRepo repository.ArticleRepo,
	actionRepo repository.ArticleActionRepo,
) ArticleStatsService {
	return &articleStatsServiceImpl{
		articleRepo: articleRepo,
		actionRepo:  actionRepo,
	}
}

// GetArticleStats 读取统计三元组
// 点赞数以点赞表实时计数为准，发现冗余列偏差就地校准后返回真实值
// 评论数永远实时统计未删除行，不走冗余列
func (s *articleStatsServiceImpl) GetArticleStats(ctx context.Context, articleID uint64) (*dto.ArticleStatsDTO, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	realLikes, err := s.actionRepo.GetLikeCountByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if realLikes != article.LikesCount {
		if err := s.articleRepo.UpdateLikesCount(ctx, articleID, realLikes); err != nil {
			log.Warn("校准点赞计数失败", "article_id", articleID, "error", err)
		}
	}

	comments, err := s.actionRepo.GetCommentCountByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return &dto.ArticleStatsDTO{
		Views:         article.Views,
		LikesCount:    realLikes,
		CommentsCount: comments,
	}, nil
}

// IncrementViews 原子自增浏览数并返回新值
// increment_amount 由存储层前后值相减得出，调用方可据此发现丢失的自增
func (s *articleStatsServiceImpl) IncrementViews(ctx context.Context, articleID uint64) (*dto.ViewIncrementDTO, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	before, after, err := s.articleRepo.IncrementViews(ctx, articleID)
	if err != nil {
		return nil, err
	}

	// 落库成功后透写浏览数缓存，供列表页批量读取
	viewKey := consts.ArticleViewKey + strconv.FormatUint(articleID, 10)
	_ = redis.SetWithExpiration(ctx, viewKey, after, cacheExpiration)

	return &dto.ViewIncrementDTO{
		Success:         true,
		Views:           after,
		IncrementAmount: after - before,
	}, nil
}
