package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// ValidateAPIKey guards admin routes with the X-API-KEY header. An empty key
// disables the routes entirely.
func ValidateAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if key == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) != 1 {
			response.AbortFail(c, http.StatusUnauthorized, response.Detail{
				Path: "X-API-KEY", Msg: "Invalid or missing API key", Location: "headers",
			})
			return
		}
		c.Next()
	}
}
