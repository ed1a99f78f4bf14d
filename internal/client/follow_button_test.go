package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowButtonOptimisticConfirm(t *testing.T) {
	var calls int
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		calls++
		return true, nil
	}

	btn := NewFollowButton(1, 2, false, toggler)
	err := btn.Toggle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ButtonConfirmed, btn.State())
	assert.True(t, btn.IsFollowing())
	assert.Equal(t, 1, calls)
}

func TestFollowButtonRollbackOnError(t *testing.T) {
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		return false, errors.New("server unavailable")
	}

	btn := NewFollowButton(1, 2, false, toggler)
	err := btn.Toggle(context.Background())

	require.Error(t, err)
	assert.Equal(t, ButtonRolledBack, btn.State())
	// 展示状态回到切换前
	assert.False(t, btn.IsFollowing())
}

func TestFollowButtonSelfFollowRejectedLocally(t *testing.T) {
	var calls int
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		calls++
		return true, nil
	}

	btn := NewFollowButton(7, 7, false, toggler)
	err := btn.Toggle(context.Background())

	require.ErrorIs(t, err, ErrFollowSelf)
	assert.Equal(t, 0, calls, "自关注不应发出请求")
	assert.False(t, btn.IsFollowing())
}

func TestFollowButtonServerStateWins(t *testing.T) {
	// 本地认为未关注，乐观翻成已关注，但服务端切换后实际是未关注
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		return false, nil
	}

	btn := NewFollowButton(1, 2, false, toggler)
	err := btn.Toggle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ButtonRolledBack, btn.State())
	assert.False(t, btn.IsFollowing())
}

func TestFollowButtonToggleRoundTrip(t *testing.T) {
	serverFollowing := false
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		serverFollowing = !serverFollowing
		return serverFollowing, nil
	}

	btn := NewFollowButton(1, 2, false, toggler)

	require.NoError(t, btn.Toggle(context.Background()))
	assert.True(t, btn.IsFollowing())

	require.NoError(t, btn.Toggle(context.Background()))
	assert.False(t, btn.IsFollowing())
	assert.False(t, serverFollowing)
}

func TestFollowButtonRejectsConcurrentToggle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	toggler := func(ctx context.Context, targetID uint64) (bool, error) {
		close(started)
		<-release
		return true, nil
	}

	btn := NewFollowButton(1, 2, false, toggler)

	done := make(chan error, 1)
	go func() {
		done <- btn.Toggle(context.Background())
	}()

	<-started
	err := btn.Toggle(context.Background())
	require.ErrorIs(t, err, ErrToggleInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, btn.IsFollowing())
}
