package routes

import (
	"github.com/farouk/portfolio-relay/internal/api/handlers"
	"github.com/farouk/portfolio-relay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Contact *handlers.ContactHandler
	Chat    *handlers.ChatHandler
}

// Middleware contains the middleware shared by route groups
type Middleware struct {
	RateLimiter *middleware.RateLimiter
}
