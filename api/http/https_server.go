package http

import (
	"net/http"

	"AeroComply/internal/config"
	jwtMiddleware "AeroComply/internal/middleware/jwt"
	complianceHandler "AeroComply/internal/modules/compliance/interface/http"
	notificationHandler "AeroComply/internal/modules/notification/interface/http"
	notificationWs "AeroComply/internal/modules/notification/interface/websocket"
	"AeroComply/pkg/back"
	"AeroComply/pkg/ssl"
	"AeroComply/pkg/util/myjwt"
	"AeroComply/pkg/ws"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 路由依赖，由 main 组装
type Deps struct {
	Conf         *config.Config
	Signer       *myjwt.Signer
	Hub          *ws.Hub
	AlertH       *complianceHandler.AlertHandler
	PreferenceH  *notificationHandler.PreferenceHandler
	BroadcastH   *notificationHandler.BroadcastHandler
	WsH          *notificationWs.WsHandler
	HealthChecks map[string]func() error
}

func NewEngine(d Deps) *gin.Engine {
	ge := gin.New()
	ge.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	if origins := d.Conf.RealtimeConfig.AllowedOrigins; len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	ge.Use(cors.New(corsConfig))
	if d.Conf.TLSConfig.Enabled {
		ge.Use(ssl.TlsHandler(d.Conf.MainConfig.Host, d.Conf.MainConfig.Port))
	}

	ge.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if d.Hub != nil {
			status["realtime_connections"] = d.Hub.ConnectionCount()
		}
		for name, check := range d.HealthChecks {
			if err := check(); err != nil {
				status["status"] = "degraded"
				status[name] = err.Error()
				continue
			}
			status[name] = "ok"
		}
		back.Success(c, status)
	})
	ge.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// 浏览器原生 WebSocket 无法携带 Header，token 走 query 参数，在 handler 内校验
	if d.WsH != nil {
		ge.GET("/ws", d.WsH.Connect)
	}

	authed := ge.Group("/")
	authed.Use(jwtMiddleware.Auth(d.Signer))
	authed.GET("/auth/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uuid":     c.GetString("uuid"),
			"username": c.GetString("username"),
		})
	})
	if d.AlertH != nil {
		d.AlertH.RegisterRoutes(authed)
	}
	if d.PreferenceH != nil {
		d.PreferenceH.RegisterRoutes(authed)
	}
	if d.BroadcastH != nil {
		d.BroadcastH.RegisterRoutes(authed)
	}
	return ge
}
