package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrArticleNotFound     = errors.New("文章不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrUserFollowSelf      = errors.New("用户不能关注自己")
	ErrUserFollowLimit     = errors.New("用户关注数量超过限制")
	ErrNotificationMissing = errors.New("通知不存在")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrArticleNotFound:     NotFound,
	ErrCommentNotFound:     NotFound,
	ErrUserFollowSelf:      BadRequest,
	ErrUserFollowLimit:     BadRequest,
	ErrNotificationMissing: NotFound,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
