package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farouk/portfolio-relay/internal/logging"
)

// HandleAPIError logs err with request context and writes body with status.
// The full error only ever goes to the log; body is what the client sees.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string, body interface{}) {
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)

	c.AbortWithStatusJSON(status, body)
}

// ExposeErrorDetails reports whether provider error details may be returned
// to clients. They never are in release mode.
func ExposeErrorDetails() bool {
	return gin.Mode() != gin.ReleaseMode
}

// IsBodyTooLarge reports whether err came from a body size limit
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
