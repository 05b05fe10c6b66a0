package handler

import (
	"net/http"

	"Gigbell/internal/middleware/jwt"
	"Gigbell/pkg/ws"
	"Gigbell/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WsHandler 只下行：连接注册到 hub 后接收通知帧
type WsHandler struct {
	hub *ws.Hub
}

func NewWsHandler(hub *ws.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connect 浏览器原生 WebSocket 不能带 Header，token 走 ?token=，由 jwt 中间件统一校验
func (h *WsHandler) Connect(c *gin.Context) {
	userID := jwt.UserID(c)
	if userID <= 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Error(err.Error())
		return
	}

	client := ws.NewClient(userID, conn)
	h.hub.Register(client)
	zlog.Debug("ws connected", zap.Int64("user_id", userID), zap.Int("online", h.hub.Online(userID)))

	go client.WritePump()
	client.ReadPump(h.hub)
}
