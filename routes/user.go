package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/user"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
)

// SetupUserRoutes registers all "/user" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Config.JWTSecret))
	{
		userGroup.GET("", userControllers.GetUser(d.DB))    // GET /user
		userGroup.PUT("", userControllers.UpdateUser(d.DB)) // PUT /user
	}
}
