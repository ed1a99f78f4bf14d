package kafka

import (
	"Inkwell/internal/pkg/redis"
	"context"
	"strconv"

	log "log/slog"
)

// ActionParams 计数类变更的统一参数
type ActionParams struct {
	TargetID       uint64
	CountKeyPrefix string
	DirtyKey       string
	IsIncrement    bool
}

// ExecAction 维护 Redis 计数缓存并把目标标脏
// 缓存不可用时直接跳过，定时任务回源重算兜底
func ExecAction(ctx context.Context, params ActionParams) {
	countKey := params.CountKeyPrefix + strconv.FormatUint(params.TargetID, 10)

	var err error
	if params.IsIncrement {
		err = redis.Incr(ctx, countKey)
	} else {
		err = redis.Decr(ctx, countKey)
	}
	if err != nil {
		log.WarnContext(ctx, "update count cache error", "key", countKey, "err", err)
	}

	if err := redis.SAdd(ctx, params.DirtyKey, params.TargetID); err != nil {
		log.WarnContext(ctx, "mark dirty error", "key", params.DirtyKey, "err", err)
	}
}

// StrToUint64 Canal 的行数据以字符串形式携带数值
func StrToUint64(v interface{}) uint64 {
	switch val := v.(type) {
	case string:
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		return uint64(val)
	case int64:
		return uint64(val)
	default:
		return 0
	}
}
