package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

const (
	ActionPerform = 1
	ActionRevoke  = 2
)

const cacheExpiration = 7 * 24 * time.Hour

const notifyPreviewLen = 50

type ArticleActionService interface {
	LikeArticle(ctx context.Context, userID, articleID uint64) error
	CancelLikeArticle(ctx context.Context, userID, articleID uint64) error
	IsLiked(ctx context.Context, userID, articleID uint64) (bool, error)
	GetArticleLikeCount(ctx context.Context, articleID uint64) (int64, error)
	GetArticleLikeCounts(ctx context.Context, articleIDs []uint64) (map[uint64]int64, error)
	GetLikedArticles(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.LikedArticleDTO, error)

	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetComments(ctx context.Context, articleID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
}

type articleActionServiceImpl struct {
	actionRepo  repository.ArticleActionRepo
	articleRepo repository.ArticleRepo
	userRepo    repository.UserRepo
	notifySvc   NotificationService
}

func NewArticleActionService(
	actionRepo repository.ArticleActionRepo,
	articleRepo repository.ArticleRepo,
	userRepo repository.UserRepo,
	notifySvc NotificationService,
) ArticleActionService {
	return &articleActionServiceImpl{
		actionRepo:  actionRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		notifySvc:   notifySvc,
	}
}

// LikeArticle 重复点赞按无操作处理，依赖联合主键兜底并发下的竞态
func (s *articleActionServiceImpl) LikeArticle(ctx context.Context, userID, articleID uint64) error {
	article, err := s.getArticleCheck(ctx, articleID)
	if err != nil {
		return err
	}
	if err := s.actionRepo.CreateLike(ctx, &model.Like{UserID: userID, ArticleID: articleID, CreatedAt: time.Now()}); err != nil {
		if isDuplicateError(err) {
			return nil
		}
		return err
	}
	s.notifyAuthor(ctx, article, userID, consts.NotifyTypeLike, article.Title)
	return nil
}

// CancelLikeArticle 取消不存在的点赞同样按无操作处理
func (s *articleActionServiceImpl) CancelLikeArticle(ctx context.Context, userID, articleID uint64) error {
	if _, err := s.getArticleCheck(ctx, articleID); err != nil {
		return err
	}
	return s.actionRepo.DeleteLike(ctx, userID, articleID)
}

func (s *articleActionServiceImpl) IsLiked(ctx context.Context, userID, articleID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.CheckLikeExists(ctx, userID, articleID)
}

func (s *articleActionServiceImpl) GetArticleLikeCount(ctx context.Context, articleID uint64) (int64, error) {
	key := consts.ArticleLikeKey + strconv.FormatUint(articleID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetLikeCountByArticleID(ctx, articleID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *articleActionServiceImpl) GetArticleLikeCounts(ctx context.Context, articleIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(articleIDs))
	for _, id := range articleIDs {
		counts[id], _ = s.GetArticleLikeCount(ctx, id)
	}
	return counts, nil
}

func (s *articleActionServiceImpl) GetLikedArticles(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.LikedArticleDTO, error) {
	ids, err := s.actionRepo.GetLikedArticleIDs(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*dto.LikedArticleDTO{}, nil
	}

	articles, err := s.articleRepo.GetArticlesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	articleMap := make(map[uint64]*model.Article, len(articles))
	for _, a := range articles {
		articleMap[a.ID] = a
	}

	// 按点赞时间顺序输出，被删除的文章跳过
	list := make([]*dto.LikedArticleDTO, 0, len(ids))
	for _, id := range ids {
		a, ok := articleMap[id]
		if !ok {
			continue
		}
		list = append(list, &dto.LikedArticleDTO{
			ArticleID:  a.ID,
			Title:      a.Title,
			Slug:       a.Slug,
			LikesCount: a.LikesCount,
			CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

func (s *articleActionServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error {
	article, err := s.getArticleCheck(ctx, req.ArticleID)
	if err != nil {
		return err
	}

	comment := &model.Comment{
		ArticleID: req.ArticleID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return err
	}

	s.notifyAuthor(ctx, article, userID, consts.NotifyTypeComment, truncate(req.Content, notifyPreviewLen))
	return nil
}

// DeleteComment 只允许评论作者或文章作者删除
func (s *articleActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		article, err := s.articleRepo.GetArticle(ctx, comment.ArticleID)
		if err != nil {
			return err
		}
		if article == nil || article.UserID != userID {
			return UnauthorizedError
		}
	}
	return s.actionRepo.DeleteComment(ctx, commentID)
}

func (s *articleActionServiceImpl) GetComments(ctx context.Context, articleID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	comments, err := s.actionRepo.GetCommentsByArticleID(ctx, articleID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []*dto.CommentDTO{}, nil
	}

	userIDs := make([]uint64, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		item := &dto.CommentDTO{}
		_ = copier.Copy(item, c)
		if u, ok := userMap[c.UserID]; ok {
			item.Nickname = u.Nickname
			item.AvatarURL = u.AvatarURL
		}
		item.CreatedAt = c.CreatedAt.Format("2006-01-02 15:04:05")
		list = append(list, item)
	}
	return list, nil
}

// notifyAuthor 动作落库后同步通知文章作者，自己操作自己的文章不发
// 通知失败不回滚动作，只记录日志
func (s *articleActionServiceImpl) notifyAuthor(ctx context.Context, article *model.Article, actorID uint64, notifyType int8, content string) {
	if article.UserID == actorID {
		return
	}
	if err := s.notifySvc.Notify(ctx, article.UserID, actorID, notifyType, article.ID, content); err != nil {
		log.Warn("发送通知失败", "target_id", article.UserID, "type", notifyType, "error", err)
	}
}

func (s *articleActionServiceImpl) getArticleCheck(ctx context.Context, articleID uint64) (*model.Article, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil || article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
