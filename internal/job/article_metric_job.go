package job

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"Inkwell/internal/service"
	"context"
	"time"

	log "log/slog"

	"github.com/google/uuid"
)

// ArticleMetricJob 周期性消费脏文章集合
// 对每篇脏文章回写冗余点赞计数并落一份当天的指标快照
type ArticleMetricJob struct {
	articleRepo repository.ArticleRepo
	actionRepo  repository.ArticleActionRepo
	metricSvc   service.ArticleMetricService
}

func NewArticleMetricJob(
	articleRepo repository.ArticleRepo,
	actionRepo repository.ArticleActionRepo,
	metricSvc service.ArticleMetricService,
) *ArticleMetricJob {
	return &ArticleMetricJob{
		articleRepo: articleRepo,
		actionRepo:  actionRepo,
		metricSvc:   metricSvc,
	}
}

func (s *ArticleMetricJob) Run() {
	traceID := "job-article-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// SETNX 互斥，避免上一轮耗时过长时两轮任务同时遍历脏集合
	locked, err := redis.TryLock(ctx, consts.ArticleMetricLockKey, traceID, 10*time.Minute, 1)
	if err == nil && !locked {
		log.InfoContext(ctx, "上一轮指标任务尚未结束，跳过本轮")
		return
	}
	if locked {
		defer func() {
			_ = redis.DeleteKey(ctx, consts.ArticleMetricLockKey)
		}()
	}

	// 先改名再遍历，任务执行期间新产生的脏数据落到原键等下一轮
	processingKey := consts.ArticleDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.ArticleDirtyKey, processingKey); err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "获取脏文章集合失败", "err", err)
		return
	}

	articleIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "脏文章集合解析失败", "err", err)
		return
	}

	synced := 0
	for _, aid := range articleIDs {
		likes, err := s.actionRepo.GetLikeCountByArticleID(ctx, aid)
		if err != nil {
			log.ErrorContext(ctx, "统计文章点赞数失败", "article_id", aid, "err", err)
			continue
		}
		if err := s.articleRepo.UpdateLikesCount(ctx, aid, likes); err != nil {
			log.ErrorContext(ctx, "回写文章点赞计数失败", "article_id", aid, "err", err)
			continue
		}

		if err := s.metricSvc.SyncArticleMetric(ctx, aid); err != nil {
			log.ErrorContext(ctx, "同步文章日指标失败", "article_id", aid, "err", err)
			continue
		}
		synced++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "删除处理中集合失败", "err", err)
	}

	log.InfoContext(ctx, "文章指标同步完成", "dirty_count", len(articleIDs), "synced", synced)
}
