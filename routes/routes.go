package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
	"github.com/urbantrove-ng/Urbantrove-Api/events"
	"github.com/urbantrove-ng/Urbantrove-Api/notify"
	"github.com/urbantrove-ng/Urbantrove-Api/payment"
	"github.com/urbantrove-ng/Urbantrove-Api/store"
)

// Deps is everything the handlers are built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Carts    *store.CartStore
	Gateway  payment.Gateway
	Notifier notify.Notifier
	Hub      *events.Hub
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Guest sessions
	SetupAuthRoutes(r, d)

	// 2️⃣ Profile (JWT-protected)
	SetupUserRoutes(r, d)

	// 3️⃣ Catalog (public reads, JWT-protected writes)
	SetupCatalogRoutes(r, d)

	// 4️⃣ Cart, orders and vendor reports
	SetupOrderRoutes(r, d)

	// 5️⃣ Payments, plans and the Telr webhook
	SetupPaymentRoutes(r, d)

	// 6️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, d)
}
