package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a 200 response with data as the JSON body
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleBadRequest sends a 400 response with body
func HandleBadRequest(c *gin.Context, body interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
