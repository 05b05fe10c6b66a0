package http

import (
	"net/http"

	jwtMiddleware "Gigbell/internal/middleware/jwt"
	"Gigbell/internal/middleware/requestid"
	alertHandler "Gigbell/internal/modules/alert/interface/http"
	notificationHandler "Gigbell/internal/modules/notification/interface/http"
	performanceHandler "Gigbell/internal/modules/performance/interface/http"
	userHandler "Gigbell/internal/modules/user/interface/http"
	"Gigbell/pkg/back"
	"Gigbell/pkg/ssl"
	"Gigbell/pkg/util/myjwt"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Host        string
	Port        int
	SSLRedirect bool
}

// Handlers 由 internal/app 组装
type Handlers struct {
	JWT          *myjwt.Manager
	Notification *notificationHandler.NotificationHandler
	Admin        *notificationHandler.AdminHandler
	Ws           *notificationHandler.WsHandler
	Subscription *alertHandler.SubscriptionHandler
	Performance  *performanceHandler.PerformanceHandler
	User         *userHandler.UserHandler
	// MCP 为 nil 时不挂载 /mcp
	MCP http.Handler
}

func NewRouter(opts Options, h Handlers) *gin.Engine {
	GE := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestid.HeaderKey}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(opts.Host, opts.Port, opts.SSLRedirect))
	GE.Use(requestid.New())

	GE.GET("/health", func(c *gin.Context) { back.Success(c, gin.H{"status": "ok"}) })
	GE.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := jwtMiddleware.Auth(h.JWT)
	// 浏览器 WebSocket 带不了 Header，token 走 ?token=
	GE.GET("/ws", auth, h.Ws.Connect)

	authed := GE.Group("/")
	authed.Use(auth)
	// /notices 是旧客户端用的别名
	for _, prefix := range []string{"/notifications", "/notices"} {
		g := authed.Group(prefix)
		g.GET("", h.Notification.List)
		g.GET("/unread-count", h.Notification.UnreadCount)
		g.PATCH("/:id/read", h.Notification.MarkRead)
		g.DELETE("/:id", h.Notification.Remove)
	}
	authed.POST("/alerts", h.Subscription.CreateAlert)
	authed.DELETE("/alerts/:ref_id", h.Subscription.DeleteAlert)
	authed.POST("/likes", h.Subscription.Like)
	authed.DELETE("/likes/:ref_id", h.Subscription.Unlike)
	authed.GET("/performance/:id", h.Performance.Get)
	authed.GET("/users/me/push", h.User.GetPushSettings)
	authed.PUT("/users/me/push", h.User.UpdatePushSettings)

	admin := GE.Group("/")
	admin.Use(auth, jwtMiddleware.AdminOnly())
	admin.POST("/notifications/dispatch-due", h.Admin.DispatchDue)
	admin.POST("/notifications/reconcile-new-performances", h.Admin.Reconcile)
	admin.POST("/notifications/force-new-performance", h.Admin.ForceNewPerformance)
	admin.POST("/performance", h.Performance.Create)
	if h.MCP != nil {
		admin.Any("/mcp", gin.WrapH(h.MCP))
	}

	return GE
}
