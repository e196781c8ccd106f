package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/handlers"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, m *Middleware) {
	limited := m.RateLimiter.Middleware()

	router.POST("/api/contact", limited, contact.Submit)
	// Older clients post to the bare path
	router.POST("/contact", limited, contact.Submit)
}
