package v1

import (
	"github.com/gin-gonic/gin"

	"salesdesk/admin-api/internal/domain/session"
	"salesdesk/admin-api/internal/interfaces/httpserver/handlers"
	"salesdesk/admin-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	sessions *session.Manager
}

func NewRoutes(provider *handlers.Provider, sessions *session.Manager) *Routes {
	return &Routes{handlers: provider, sessions: sessions}
}

// Register attaches all v1 routes under the /v1 prefix. Everything except
// login sits behind the session middleware.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/auth/login", r.handlers.Auth.Login)

	protected := group.Group("")
	protected.Use(middlewares.SessionMiddleware(r.sessions))

	protected.POST("/auth/logout", r.handlers.Auth.Logout)
	protected.GET("/auth/me", r.handlers.Auth.Me)

	protected.POST("/proxy/workflow", r.handlers.Workflow.Dispatch)
	protected.POST("/proxy/images", r.handlers.Image.Dispatch)
	protected.POST("/proxy/database", r.handlers.Database.Dispatch)
	protected.POST("/proxy/messaging", r.handlers.Messaging.Dispatch)

	protected.POST("/agent/chat", r.handlers.Agent.Chat)

	protected.GET("/chats", r.handlers.Chat.List)
	protected.GET("/chats/:uid/messages", r.handlers.Chat.Messages)
}
