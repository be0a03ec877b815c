package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/urbantrove-ng/Urbantrove-Api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestUser(d.DB, d.Config.JWTSecret))
	}
}
