package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/dto/common"
)

// Health status labels
const (
	StatusOperational = "operational"
	StatusHealthy     = "healthy"
)

// HealthHandler reports liveness. It has no dependencies on the providers.
type HealthHandler struct {
	version string
	now     func() time.Time
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version: version,
		now:     time.Now,
	}
}

// Root answers GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewHealthResponse(StatusOperational, h.version, h.now()))
}

// Check answers GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewHealthResponse(StatusHealthy, h.version, h.now()))
}
