package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendedUser 推荐查询的投影行
type RecommendedUser struct {
	UserID         uint64
	Nickname       string
	AvatarURL      string
	FollowersCount int64
}

// FollowEdge 列表查询的投影行，带上边的创建时间
type FollowEdge struct {
	UserID    uint64
	CreatedAt time.Time
}

type UserFollowRepo interface {
	CreateFollow(ctx context.Context, followerID, followingID uint64) (created bool, err error)
	DeleteFollow(ctx context.Context, followerID, followingID uint64) (deleted bool, err error)
	CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowerEdges(ctx context.Context, userID uint64, limit, offset int) ([]FollowEdge, error)
	GetFollowingEdges(ctx context.Context, userID uint64, limit, offset int) ([]FollowEdge, error)
	GetRecommendedUsers(ctx context.Context, userID uint64, limit int) ([]RecommendedUser, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db}
}

// CreateFollow 依赖联合主键去重，重复关注按无操作处理
func (s *UserFollowRepoImpl) CreateFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	follow := model.UserFollow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *UserFollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *UserFollowRepoImpl) CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (s *UserFollowRepoImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *UserFollowRepoImpl) GetFollowerEdges(ctx context.Context, userID uint64, limit, offset int) ([]FollowEdge, error) {
	var edges []FollowEdge
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Select("follower_id AS user_id, created_at").
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&edges).Error
	return edges, err
}

func (s *UserFollowRepoImpl) GetFollowingEdges(ctx context.Context, userID uint64, limit, offset int) ([]FollowEdge, error) {
	var edges []FollowEdge
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Select("following_id AS user_id, created_at").
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&edges).Error
	return edges, err
}

// GetRecommendedUsers 未关注的用户按粉丝数倒序
func (s *UserFollowRepoImpl) GetRecommendedUsers(ctx context.Context, userID uint64, limit int) ([]RecommendedUser, error) {
	var rows []RecommendedUser
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id AS user_id, users.nickname, users.avatar_url, COUNT(uf.follower_id) AS followers_count").
		Joins("LEFT JOIN user_follows uf ON uf.following_id = users.id").
		Where("users.id != ?", userID).
		Where("users.id NOT IN (?)",
			s.db.Model(&model.UserFollow{}).
				Select("following_id").
				Where("follower_id = ?", userID)).
		Group("users.id").
		Order("followers_count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
