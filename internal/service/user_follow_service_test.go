package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowSvcForTest(maxFollowing int64) (UserFollowService, *fakeFollowRepo, *fakeNotifySvc) {
	followRepo := newFakeFollowRepo()
	userRepo := newFakeUserRepo(
		&model.User{ID: 1, Nickname: "甲"},
		&model.User{ID: 2, Nickname: "乙", AvatarURL: "b.png"},
		&model.User{ID: 3, Nickname: "丙"},
		&model.User{ID: 4, Nickname: "丁"},
	)
	notifySvc := &fakeNotifySvc{}
	svc := NewUserFollowService(followRepo, userRepo, notifySvc, &config.FollowConfig{
		MaxFollowing:  maxFollowing,
		CacheSize:     1000,
		CacheTTLHours: 1,
	})
	return svc, followRepo, notifySvc
}

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle twice round trips", func(t *testing.T) {
		svc, followRepo, _ := newFollowSvcForTest(1000)

		result, err := svc.ToggleFollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.IsFollowing)

		exists, _ := followRepo.CheckFollowExists(ctx, 1, 2)
		assert.True(t, exists)

		result, err = svc.ToggleFollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.IsFollowing)

		exists, _ = followRepo.CheckFollowExists(ctx, 1, 2)
		assert.False(t, exists)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		svc, _, notifySvc := newFollowSvcForTest(1000)
		_, err := svc.ToggleFollow(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrUserFollowSelf)
		assert.Equal(t, 0, notifySvc.callCount())
	})

	t.Run("missing target user", func(t *testing.T) {
		svc, _, _ := newFollowSvcForTest(1000)
		_, err := svc.ToggleFollow(ctx, 1, 999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("following limit enforced", func(t *testing.T) {
		svc, _, _ := newFollowSvcForTest(1)

		_, err := svc.ToggleFollow(ctx, 1, 2)
		require.NoError(t, err)

		_, err = svc.ToggleFollow(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrUserFollowLimit)

		// 取关不受上限限制
		result, err := svc.ToggleFollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, result.IsFollowing)
	})
}

func TestToggleFollowNotification(t *testing.T) {
	ctx := context.Background()
	svc, _, notifySvc := newFollowSvcForTest(1000)

	// 关注发一条通知
	_, err := svc.ToggleFollow(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 1, notifySvc.callCount())
	call := notifySvc.calls[0]
	assert.Equal(t, uint64(2), call.targetID)
	assert.Equal(t, uint64(1), call.actorID)
	assert.Equal(t, consts.NotifyTypeFollow, call.notifyType)

	// 取关不发通知
	_, err = svc.ToggleFollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, notifySvc.callCount())
}

func TestIsFollowingAndCounts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newFollowSvcForTest(1000)

	_, err := svc.ToggleFollow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, 3, 2)
	require.NoError(t, err)

	following, err := svc.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.IsFollowing(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, following)

	counts, err := svc.GetFollowCounts(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.FollowersCount)
	assert.Equal(t, int64(0), counts.FollowingCount)
}

func TestGetFollowersEnrichment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newFollowSvcForTest(1000)

	_, err := svc.ToggleFollow(ctx, 2, 1)
	require.NoError(t, err)

	list, err := svc.GetFollowers(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(2), list[0].UserID)
	assert.Equal(t, "乙", list[0].Nickname)
	assert.Equal(t, "b.png", list[0].AvatarURL)
}

func TestGetRecommendedUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newFollowSvcForTest(1000)

	// 2 有两个粉丝，3 有一个，1 已关注 4
	_, err := svc.ToggleFollow(ctx, 3, 2)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, 4, 2)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, 4, 3)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, 1, 4)
	require.NoError(t, err)

	list, err := svc.GetRecommendedUsers(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint64(2), list[0].UserID, "粉丝多的排前面")
	assert.Equal(t, int64(2), list[0].FollowersCount)
	assert.Equal(t, uint64(3), list[1].UserID)

	for _, item := range list {
		assert.NotEqual(t, uint64(1), item.UserID)
		assert.NotEqual(t, uint64(4), item.UserID, "已关注的不再推荐")
	}
}
