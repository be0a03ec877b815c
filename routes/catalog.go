package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/urbantrove-ng/Urbantrove-Api/controllers/product"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
)

// SetupCatalogRoutes registers category, product and service endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	uploads := productcontroller.Uploads{Dir: d.Config.UploadDir, BaseURL: d.Config.ServerURL}
	requireAuth := middleware.ValidateToken(d.Config.JWTSecret)

	// ──────────────── Browse ────────────────
	r.GET("/category/:type", productcontroller.GetCategoriesByType(db))
	r.GET("/category_products", productcontroller.GetSubCategoryProducts(db))
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/services", productcontroller.GetServices(db))
	r.GET("/product/:id", productcontroller.GetProductByID(db))
	r.GET("/service/:id", productcontroller.GetServiceByID(db))
	r.GET("/search", productcontroller.SearchProducts(db))
	r.GET("/related_products", productcontroller.GetRelatedProducts(db))
	r.GET("/filter", requireAuth, productcontroller.FilterProducts(db))

	// ──────────────── Vendor listings ────────────────
	r.POST("/product", requireAuth, productcontroller.CreateProduct(db, uploads))
	r.PATCH("/product/:id", requireAuth, productcontroller.UpdateProduct(db, uploads))
	r.DELETE("/product/:id", requireAuth, productcontroller.DeleteProduct(db))
	r.DELETE("/product/image", requireAuth, productcontroller.DeleteProductImage(db))
	r.GET("/vendor/products", requireAuth, productcontroller.GetVendorProducts(db))
}
