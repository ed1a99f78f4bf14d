package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"strconv"
	"time"

	log "log/slog"

	redisv9 "github.com/redis/go-redis/v9"
)

type UserFollowService interface {
	ToggleFollow(ctx context.Context, userID, targetID uint64) (*dto.FollowToggleDTO, error)
	IsFollowing(ctx context.Context, userID, targetID uint64) (bool, error)
	GetFollowCounts(ctx context.Context, userID uint64) (*dto.FollowCountsDTO, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
	GetRecommendedUsers(ctx context.Context, userID uint64, limit int) ([]*dto.RecommendUserDTO, error)
}

type UserFollowServiceImpl struct {
	followRepo repository.UserFollowRepo
	userRepo   repository.UserRepo
	notifySvc  NotificationService

	maxFollowing int64
	cacheSize    int
	cacheTTL     time.Duration
}

func NewUserFollowService(
	followRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	notifySvc NotificationService,
	cfg *config.FollowConfig,
) UserFollowService {
	return &UserFollowServiceImpl{
		followRepo:   followRepo,
		userRepo:     userRepo,
		notifySvc:    notifySvc,
		maxFollowing: cfg.MaxFollowing,
		cacheSize:    cfg.CacheSize,
		cacheTTL:     time.Duration(cfg.CacheTTLHours) * time.Hour,
	}
}

type fetchEdgesFunc func(ctx context.Context, userID uint64, limit, offset int) ([]repository.FollowEdge, error)
type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

// ToggleFollow 单次调用在 关注/未关注 之间切换，返回切换后的服务端状态
// 并发重复请求靠联合主键与影响行数收敛，不会产生重复边
func (s *UserFollowServiceImpl) ToggleFollow(ctx context.Context, userID, targetID uint64) (*dto.FollowToggleDTO, error) {
	if userID == targetID {
		return nil, ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.followRepo.CheckFollowExists(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}

	if exists {
		if _, err := s.followRepo.DeleteFollow(ctx, userID, targetID); err != nil {
			return nil, err
		}
		s.invalidateCaches(ctx, userID, targetID)
		return &dto.FollowToggleDTO{Success: true, IsFollowing: false}, nil
	}

	count, err := s.getFollowingCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxFollowing {
		return nil, ErrUserFollowLimit
	}

	created, err := s.followRepo.CreateFollow(ctx, userID, targetID)
	if err != nil {
		return nil, err
	}
	s.invalidateCaches(ctx, userID, targetID)

	if created {
		if err := s.notifySvc.Notify(ctx, targetID, userID, consts.NotifyTypeFollow, 0, ""); err != nil {
			log.Warn("发送关注通知失败", "target_id", targetID, "error", err)
		}
	}
	return &dto.FollowToggleDTO{Success: true, IsFollowing: true}, nil
}

func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, userID, targetID uint64) (bool, error) {
	key := consts.UserFollowingKey + strconv.FormatUint(userID, 10)
	score, err := redis.ZScore(ctx, key, strconv.FormatUint(targetID, 10))
	if err == nil && score != 0 {
		return true, nil
	}
	return s.followRepo.CheckFollowExists(ctx, userID, targetID)
}

func (s *UserFollowServiceImpl) GetFollowCounts(ctx context.Context, userID uint64) (*dto.FollowCountsDTO, error) {
	followers, err := s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, s.followRepo.GetFollowerCount)
	if err != nil {
		return nil, err
	}
	following, err := s.getFollowingCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowCountsDTO{FollowersCount: followers, FollowingCount: following}, nil
}

func (s *UserFollowServiceImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	edges, err := s.getEdgesCommon(ctx, userID, limit, offset, consts.UserFollowerKey, s.followRepo.GetFollowerEdges)
	if err != nil {
		return nil, err
	}
	return s.expandEdges(ctx, edges)
}

func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	edges, err := s.getEdgesCommon(ctx, userID, limit, offset, consts.UserFollowingKey, s.followRepo.GetFollowingEdges)
	if err != nil {
		return nil, err
	}
	return s.expandEdges(ctx, edges)
}

func (s *UserFollowServiceImpl) GetRecommendedUsers(ctx context.Context, userID uint64, limit int) ([]*dto.RecommendUserDTO, error) {
	rows, err := s.followRepo.GetRecommendedUsers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.RecommendUserDTO, 0, len(rows))
	for _, r := range rows {
		list = append(list, &dto.RecommendUserDTO{
			UserID:         r.UserID,
			Nickname:       r.Nickname,
			AvatarURL:      r.AvatarURL,
			FollowersCount: r.FollowersCount,
		})
	}
	return list, nil
}

func (s *UserFollowServiceImpl) getFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowingCountKey, s.followRepo.GetFollowingCount)
}

// invalidateCaches 关注边变更后丢弃相关缓存，下次读取回源重建
func (s *UserFollowServiceImpl) invalidateCaches(ctx context.Context, userID, targetID uint64) {
	userStr := strconv.FormatUint(userID, 10)
	targetStr := strconv.FormatUint(targetID, 10)
	_ = redis.DeleteKey(ctx, consts.UserFollowingKey+userStr)
	_ = redis.DeleteKey(ctx, consts.UserFollowerKey+targetStr)
	_ = redis.DeleteKey(ctx, consts.UserFollowingCountKey+userStr)
	_ = redis.DeleteKey(ctx, consts.UserFollowerCountKey+targetStr)
}

func (s *UserFollowServiceImpl) getEdgesCommon(
	ctx context.Context,
	userID uint64,
	limit, offset int,
	keyPrefix string,
	fetchDB fetchEdgesFunc,
) ([]repository.FollowEdge, error) {
	if offset+limit > s.cacheSize {
		return fetchDB(ctx, userID, limit, offset)
	}

	key := keyPrefix + strconv.FormatUint(userID, 10)

	res, err := redis.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1))
	if err == nil && len(res) != 0 {
		return zSetResToEdges(res)
	}

	dbData, err := fetchDB(ctx, userID, s.cacheSize, 0)
	if err != nil {
		return nil, err
	}
	if len(dbData) == 0 {
		return []repository.FollowEdge{}, nil
	}

	s.warmEdgeCache(key, dbData)

	start := offset
	end := offset + limit
	if start >= len(dbData) {
		return []repository.FollowEdge{}, nil
	}
	if end > len(dbData) {
		end = len(dbData)
	}
	return dbData[start:end], nil
}

// warmEdgeCache 异步重建有序集合缓存，使用 Background context 防止 cancel
func (s *UserFollowServiceImpl) warmEdgeCache(key string, edges []repository.FollowEdge) {
	rdb := redis.GetRdbClient()
	if rdb == nil {
		return
	}
	go func(data []repository.FollowEdge, cacheKey string) {
		ctx := context.Background()
		_ = redis.DeleteKey(ctx, cacheKey)
		pipe := rdb.Pipeline()
		zMembers := make([]redisv9.Z, 0, len(data))
		for _, e := range data {
			zMembers = append(zMembers, redisv9.Z{
				Score:  float64(e.CreatedAt.Unix()),
				Member: e.UserID,
			})
		}
		pipe.ZAdd(ctx, cacheKey, zMembers...)
		pipe.Expire(ctx, cacheKey, s.cacheTTL)
		_, _ = pipe.Exec(ctx)
	}(edges, key)
}

func (s *UserFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userID uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		return strconv.ParseInt(valStr, 10, 64)
	}

	count, err := fetchDB(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, count, s.cacheTTL)
	return count, nil
}

func (s *UserFollowServiceImpl) expandEdges(ctx context.Context, edges []repository.FollowEdge) ([]*dto.FollowUserDTO, error) {
	if len(edges) == 0 {
		return []*dto.FollowUserDTO{}, nil
	}
	userIDs := make([]uint64, 0, len(edges))
	for _, e := range edges {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	list := make([]*dto.FollowUserDTO, 0, len(edges))
	for _, e := range edges {
		item := &dto.FollowUserDTO{
			UserID:     e.UserID,
			FollowedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u, ok := userMap[e.UserID]; ok {
			item.Nickname = u.Nickname
			item.AvatarURL = u.AvatarURL
		}
		list = append(list, item)
	}
	return list, nil
}

func zSetResToEdges(res []redisv9.Z) ([]repository.FollowEdge, error) {
	edges := make([]repository.FollowEdge, 0, len(res))
	for _, v := range res {
		id, err := strconv.ParseUint(v.Member.(string), 10, 64)
		if err != nil {
			return nil, err
		}
		edges = append(edges, repository.FollowEdge{
			UserID:    id,
			CreatedAt: time.Unix(int64(v.Score), 0),
		})
	}
	return edges, nil
}
