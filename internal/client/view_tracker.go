// Package client 提供嵌入调用方进程的客户端状态机
// 浏览上报与关注按钮的交互约定在这里收口，服务端只暴露普通接口
package client

import (
	"Inkwell/internal/api/config"
	"context"
	"sync"
	"time"

	log "log/slog"
)

// TrackerState 浏览上报状态机状态
type TrackerState int32

const (
	TrackerIdle TrackerState = iota
	TrackerPending
	TrackerDone
	TrackerFailed
)

// ViewReporter 状态机触发的上报动作，由调用方注入
type ViewReporter func(ctx context.Context, articleID uint64) error

// ViewTracker 单篇文章的浏览上报状态机
// 挂载后经过防抖窗口才真正上报，窗口内卸载则本次浏览不计
// 一个实例生命周期内至多上报一次，失败不重试
type ViewTracker struct {
	mu        sync.Mutex
	state     TrackerState
	articleID uint64
	debounce  time.Duration
	reporter  ViewReporter
	timer     *time.Timer
	done      chan struct{}
}

func NewViewTracker(articleID uint64, debounce time.Duration, reporter ViewReporter) *ViewTracker {
	return &ViewTracker{
		state:     TrackerIdle,
		articleID: articleID,
		debounce:  debounce,
		reporter:  reporter,
		done:      make(chan struct{}),
	}
}

// NewViewTrackerFromConfig 使用配置里的防抖窗口构造状态机
func NewViewTrackerFromConfig(articleID uint64, cfg *config.TrackerConfig, reporter ViewReporter) *ViewTracker {
	return NewViewTracker(articleID, time.Duration(cfg.DebounceMs)*time.Millisecond, reporter)
}

// Mount 进入防抖等待，重复挂载不会叠加计时器
func (s *ViewTracker) Mount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != TrackerIdle {
		return
	}
	s.state = TrackerPending
	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(ctx)
	})
}

// Unmount 离开页面，防抖窗口内取消本次上报
// 已经上报或上报失败的实例卸载无副作用
func (s *ViewTracker) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != TrackerPending {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = TrackerIdle
	// 回到 Idle 后实例仍可重新挂载，重新计时
}

func (s *ViewTracker) fire(ctx context.Context) {
	s.mu.Lock()
	if s.state != TrackerPending {
		s.mu.Unlock()
		return
	}
	reporter := s.reporter
	articleID := s.articleID
	s.mu.Unlock()

	err := reporter(ctx, articleID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != TrackerPending {
		return
	}
	if err != nil {
		log.Warn("浏览上报失败", "article_id", articleID, "error", err)
		s.state = TrackerFailed
	} else {
		s.state = TrackerDone
	}
	close(s.done)
}

// State 当前状态
func (s *ViewTracker) State() TrackerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait 阻塞到上报结束或超时，供测试与同步调用方使用
func (s *ViewTracker) Wait(timeout time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
