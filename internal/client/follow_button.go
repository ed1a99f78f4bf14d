package client

import (
	"context"
	"errors"
	"sync"

	log "log/slog"
)

// ButtonState 关注按钮状态机状态
type ButtonState int32

const (
	ButtonIdle ButtonState = iota
	ButtonOptimistic
	ButtonConfirmed
	ButtonRolledBack
)

// ErrFollowSelf 关注自己在本地直接拒绝，不发请求
var ErrFollowSelf = errors.New("cannot follow yourself")

// ErrToggleInFlight 上一次切换尚未返回
var ErrToggleInFlight = errors.New("follow toggle already in flight")

// FollowToggler 状态机触发的切换请求，返回服务端确认后的关注状态
type FollowToggler func(ctx context.Context, targetID uint64) (isFollowing bool, err error)

// FollowButton 关注按钮的乐观更新状态机
// 点击后立即翻转展示状态，服务端返回后以服务端为准收敛
// 失败或结果与乐观值不符时回滚展示状态
type FollowButton struct {
	mu          sync.Mutex
	state       ButtonState
	selfID      uint64
	targetID    uint64
	isFollowing bool
	toggler     FollowToggler
}

func NewFollowButton(selfID, targetID uint64, initialFollowing bool, toggler FollowToggler) *FollowButton {
	return &FollowButton{
		state:       ButtonIdle,
		selfID:      selfID,
		targetID:    targetID,
		isFollowing: initialFollowing,
		toggler:     toggler,
	}
}

// Toggle 执行一次乐观切换，阻塞到服务端确认
func (s *FollowButton) Toggle(ctx context.Context) error {
	s.mu.Lock()
	if s.selfID == s.targetID {
		s.mu.Unlock()
		return ErrFollowSelf
	}
	if s.state == ButtonOptimistic {
		s.mu.Unlock()
		return ErrToggleInFlight
	}

	previous := s.isFollowing
	optimistic := !previous
	s.isFollowing = optimistic
	s.state = ButtonOptimistic
	s.mu.Unlock()

	serverState, err := s.toggler(ctx, s.targetID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.isFollowing = previous
		s.state = ButtonRolledBack
		return err
	}

	s.isFollowing = serverState
	if serverState == optimistic {
		s.state = ButtonConfirmed
	} else {
		// 并发切换导致乐观值落后，服务端状态覆盖本地
		log.Debug("乐观状态与服务端不符，已校正", "target_id", s.targetID, "server_state", serverState)
		s.state = ButtonRolledBack
	}
	return nil
}

// IsFollowing 当前展示的关注状态
func (s *FollowButton) IsFollowing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFollowing
}

// State 当前状态机状态
func (s *FollowButton) State() ButtonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
