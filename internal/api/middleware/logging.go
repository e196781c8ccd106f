package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/constants"
	"github.com/farouk/portfolio-relay/internal/logging"
)

// RequestLogger logs one line per request. The logger decides whether
// access lines are emitted at all (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.LogHTTPRequest(
			method,
			path,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
