package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 客户端未初始化时所有辅助函数都应返回 ErrNotReady 而不是崩溃
// 调用方据此把缓存路径降级为回源
func TestHelpersWithoutClient(t *testing.T) {
	require.Nil(t, Rdb)
	ctx := context.Background()

	_, err := GetValue(ctx, "k")
	assert.ErrorIs(t, err, ErrNotReady)

	_, err = Subscribe(ctx, "notify:user:1")
	assert.ErrorIs(t, err, ErrNotReady)

	locked, err := TryLock(ctx, "article:metric:lock", "owner", time.Minute, 1)
	assert.False(t, locked)
	assert.ErrorIs(t, err, ErrNotReady)

	assert.ErrorIs(t, Publish(ctx, "notify:user:1", "payload"), ErrNotReady)
	assert.ErrorIs(t, Rename(ctx, "a", "b"), ErrNotReady)
}
