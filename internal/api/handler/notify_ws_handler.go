package handler

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotifyWsHandler 实时通知推送
// 每个在线用户订阅自己的 Redis 频道，新通知落库后经频道转发
type NotifyWsHandler struct {
}

func NewNotifyWsHandler() *NotifyWsHandler {
	return &NotifyWsHandler{}
}

func (s *NotifyWsHandler) Connect(c *gin.Context) {
	// 鉴权，WS 握手带不了 Header，token 走查询参数
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	channel := consts.NotifyChannelKey + strconv.FormatUint(userID, 10)
	pubsub, err := redis.Subscribe(context.Background(), channel)
	if err != nil {
		log.Error("订阅通知频道失败", "userID", userID, "err", err)
		return
	}
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户通知 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
			if err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户通知 WS 连接已断开", "userID", userID)
			return
		}
	}
}
