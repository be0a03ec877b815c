package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/cart"
	orderControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/order"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
)

// SetupOrderRoutes registers the session cart, checkout and vendor order reports.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	secret := d.Config.JWTSecret
	requireAuth := middleware.ValidateToken(secret)

	cart := r.Group("/cart", middleware.OptionalToken(secret))
	{
		cart.GET("", cartControllers.GetCart(d.Carts))
		cart.POST("", cartControllers.AddToCart(db, d.Carts))
		cart.DELETE("", cartControllers.RemoveFromCart(d.Carts))
	}

	r.GET("/order", requireAuth, orderControllers.GetCurrentOrder(db, d.Carts))
	r.POST("/order", requireAuth, orderControllers.Checkout(db, d.Carts, d.Hub, d.Config.CommissionRate))

	vendor := r.Group("/vendor", requireAuth)
	{
		vendor.GET("/orders", orderControllers.GetVendorOrders(db))
		vendor.GET("/orders/export", orderControllers.ExportVendorOrders(db))
	}

	// websocket endpoint for real-time order updates (admin dashboards only)
	r.GET("/ws/orders", middleware.ValidateAPIKey(d.Config.AdminAPIKey), d.Hub.Handler)
}
