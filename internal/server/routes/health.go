package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/handlers"
)

// SetupHealthRoutes configures health check endpoints. They are not rate
// limited so they stay usable as liveness probes.
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/", health.Root)
	router.GET("/api/health", health.Check)
}
