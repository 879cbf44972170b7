package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standard success envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// sendSuccess sends a 200 response with the standard envelope.
func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}
