package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/farouk/portfolio-relay/internal/api/middleware"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/telemetry"
)

// GlobalOptions configures the middleware applied to every route
type GlobalOptions struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	Tracing        bool
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, logger *logging.Logger) {
	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, m)
	SetupChatRoutes(router, h.Chat, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes.
// CORS runs before the body limit and any handler, so a rejected origin
// never reaches application code.
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts GlobalOptions) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	if opts.Tracing {
		router.Use(otelgin.Middleware(telemetry.ServiceName))
	}
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.LimitRequestBody(opts.MaxBodyBytes))
}
