package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/urbantrove-ng/Urbantrove-Api/controllers/product"
	userControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/user"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.Config.AdminAPIKey))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))

		// ─────────── Category Management ───────────
		adminGroup.POST("/categories", productcontroller.CreateCategory(d.DB))
		adminGroup.GET("/categories/:type", productcontroller.GetCategoriesByType(d.DB))
	}
}
