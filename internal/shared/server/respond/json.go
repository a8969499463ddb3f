package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with the given status. Handlers go through this
// rather than gin directly so every success body takes the same shape
// as the error envelope's sibling.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK is JSON with http.StatusOK.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
