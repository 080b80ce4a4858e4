package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Private writes a 200 JSON response that caches must not keep. Analysis
// results carry resume content.
func Private(c *gin.Context, payload any) {
	c.Header("Cache-Control", "no-store")
	JSON(c, http.StatusOK, payload)
}
