package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"AeroComply/internal/modules/notification/application/service"
	"AeroComply/pkg/util/myjwt"
	"AeroComply/pkg/ws"
	"AeroComply/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxInboundMessage = 4096

// WsHandler 实时告警通道入口
//
// WebSocket URL:
//
//	ws://host:port/ws?user_id=<uid>&org_id=<org>&token=<JWT>
//
// token 可选；携带时其 uuid 必须与 user_id 一致，缺省 user_id 时取 token 中的 uuid。
// 客户端发送文本 "ping" 时服务端回复文本 "pong"，其余消息忽略
type WsHandler struct {
	hub      *ws.Hub
	signer   *myjwt.Signer
	opts     ws.ClientOptions
	upgrader websocket.Upgrader
}

func NewWsHandler(hub *ws.Hub, signer *myjwt.Signer, opts ws.ClientOptions, allowedOrigins []string) *WsHandler {
	return &WsHandler{
		hub:    hub,
		signer: signer,
		opts:   opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker 未配置白名单时放行所有来源
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}

func (h *WsHandler) Connect(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	orgID := strings.TrimSpace(c.Query("org_id"))
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	if token != "" {
		if h.signer == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := h.signer.ParseToken(token)
		if err != nil || claims == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if userID == "" {
			userID = claims.Uuid
		}
		if claims.Uuid != userID {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(userID, orgID, conn, h.opts)
	h.hub.Register(client, userID, orgID)
	go client.WritePump()
	defer h.hub.Unregister(client)

	zlog.Info("ws connected",
		zap.String("channel_id", client.ID()),
		zap.String("user_id", userID),
		zap.String("org_id", orgID))

	welcome, _ := json.Marshal(ws.Event{
		Type:      service.EventConnected,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      map[string]string{"channel_id": client.ID()},
	})
	if err := client.Send(welcome); err != nil {
		zlog.Warn("ws welcome failed", zap.String("channel_id", client.ID()), zap.Error(err))
		return
	}

	pongWait := h.opts.PongWait
	if pongWait <= 0 {
		pongWait = 60 * time.Second
	}
	conn.SetReadLimit(maxInboundMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zlog.Warn("ws read failed", zap.String("channel_id", client.ID()), zap.Error(err))
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt != websocket.TextMessage {
			continue
		}
		if strings.TrimSpace(string(msg)) == "ping" {
			if err := client.Send([]byte("pong")); err != nil {
				break
			}
		}
	}
	zlog.Info("ws disconnected", zap.String("channel_id", client.ID()), zap.String("user_id", userID))
}
