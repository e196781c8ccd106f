package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/handlers"
)

// SetupChatRoutes configures the chat proxy route
func SetupChatRoutes(router *gin.Engine, chat *handlers.ChatHandler, m *Middleware) {
	router.POST("/api/chat", m.RateLimiter.Middleware(), chat.Chat)
}
