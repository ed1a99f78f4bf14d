package service

import (
	"Inkwell/internal/model"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetArticleStats(t *testing.T) {
	ctx := context.Background()

	t.Run("likes count reconciled from like table", func(t *testing.T) {
		articleRepo := newFakeArticleRepo(&model.Article{ID: 1, UserID: 10, Views: 100, LikesCount: 3})
		actionRepo := newFakeActionRepo()
		for uid := uint64(1); uid <= 4; uid++ {
			_ = actionRepo.CreateLike(ctx, &model.Like{UserID: uid, ArticleID: 1, CreatedAt: time.Now()})
		}
		svc := NewArticleStatsService(articleRepo, actionRepo)

		stats, err := svc.GetArticleStats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.LikesCount, "返回真实点赞数而非冗余列")
		assert.Equal(t, int64(100), stats.Views)

		// 冗余列被就地校准
		article, _ := articleRepo.GetArticle(ctx, 1)
		assert.Equal(t, int64(4), article.LikesCount)
	})

	t.Run("comments count is always live", func(t *testing.T) {
		articleRepo := newFakeArticleRepo(&model.Article{ID: 1, UserID: 10})
		actionRepo := newFakeActionRepo()
		svc := NewArticleStatsService(articleRepo, actionRepo)

		c1 := &model.Comment{ArticleID: 1, UserID: 2, Content: "第一条", CreatedAt: time.Now()}
		c2 := &model.Comment{ArticleID: 1, UserID: 3, Content: "第二条", CreatedAt: time.Now()}
		require.NoError(t, actionRepo.CreateComment(ctx, c1))
		require.NoError(t, actionRepo.CreateComment(ctx, c2))

		stats, err := svc.GetArticleStats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.CommentsCount)

		// 软删除后实时计数立即下降
		require.NoError(t, actionRepo.DeleteComment(ctx, c1.ID))
		stats, err = svc.GetArticleStats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.CommentsCount)
	})

	t.Run("missing article", func(t *testing.T) {
		svc := NewArticleStatsService(newFakeArticleRepo(), newFakeActionRepo())
		_, err := svc.GetArticleStats(ctx, 999)
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})
}

func TestStatsReconciliationAroundLikeCycle(t *testing.T) {
	ctx := context.Background()
	articleRepo := newFakeArticleRepo(&model.Article{ID: 1, UserID: 10, LikesCount: 3})
	actionRepo := newFakeActionRepo()
	for uid := uint64(1); uid <= 3; uid++ {
		_ = actionRepo.CreateLike(ctx, &model.Like{UserID: uid, ArticleID: 1, CreatedAt: time.Now()})
	}
	svc := NewArticleStatsService(articleRepo, actionRepo)

	stats, err := svc.GetArticleStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.LikesCount)

	// 点赞后读到 4
	require.NoError(t, actionRepo.CreateLike(ctx, &model.Like{UserID: 9, ArticleID: 1, CreatedAt: time.Now()}))
	stats, err = svc.GetArticleStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.LikesCount)

	// 取消点赞回到 3
	require.NoError(t, actionRepo.DeleteLike(ctx, 9, 1))
	stats, err = svc.GetArticleStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.LikesCount)
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()

	t.Run("returns new value and exact delta", func(t *testing.T) {
		articleRepo := newFakeArticleRepo(&model.Article{ID: 1, UserID: 10, Views: 7})
		svc := NewArticleStatsService(articleRepo, newFakeActionRepo())

		result, err := svc.IncrementViews(ctx, 1)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(8), result.Views)
		assert.Equal(t, int64(1), result.IncrementAmount)
	})

	t.Run("missing article", func(t *testing.T) {
		svc := NewArticleStatsService(newFakeArticleRepo(), newFakeActionRepo())
		_, err := svc.IncrementViews(ctx, 404)
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		articleRepo := newFakeArticleRepo(&model.Article{ID: 1, UserID: 10})
		svc := NewArticleStatsService(articleRepo, newFakeActionRepo())

		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := svc.IncrementViews(ctx, 1)
				assert.NoError(t, err)
				assert.Equal(t, int64(1), result.IncrementAmount)
			}()
		}
		wg.Wait()

		article, _ := articleRepo.GetArticle(ctx, 1)
		assert.Equal(t, int64(n), article.Views)
	})
}
