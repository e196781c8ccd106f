package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/api/constants"
	"github.com/farouk/portfolio-relay/internal/api/dto/common"
	"github.com/farouk/portfolio-relay/internal/logging"
)

// Recovery turns a panic in any later handler into a 500 so that one bad
// request never takes the process down.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewCodedErrorResponse(common.ErrCodeInternalServer, "Internal server error"))
			}
		}()

		c.Next()
	}
}
