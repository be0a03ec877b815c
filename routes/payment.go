package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/payment"
	planControllers "github.com/urbantrove-ng/Urbantrove-Api/controllers/plan"
	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// SetupPaymentRoutes registers order and plan payments plus the Telr webhook.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	requireAuth := middleware.ValidateToken(d.Config.JWTSecret)
	rec := paymentControllers.NewReconciler(db, d.Notifier, d.Hub)

	pay := r.Group("/payment")
	{
		pay.POST("", requireAuth, paymentControllers.StartPayment(db, d.Gateway, models.SubjectOrder))
		pay.GET("", requireAuth, paymentControllers.Callback(d.Gateway, rec, models.SubjectOrder))

		// Webhook endpoint: middleware handles sandbox/prod verification
		pay.POST("/webhook", middleware.TelrWebhookAuth(d.Config.Telr), paymentControllers.Webhook(rec))
	}
	r.GET("/payment_details", requireAuth, paymentControllers.PaymentDetails(d.Gateway))

	r.POST("/plan", requireAuth, planControllers.CreatePlan(db))
	r.GET("/subscription", requireAuth, planControllers.GetSubscription(db))
	plan := r.Group("/plan/payment", requireAuth)
	{
		plan.POST("", paymentControllers.StartPayment(db, d.Gateway, models.SubjectPlan))
		plan.GET("", paymentControllers.Callback(d.Gateway, rec, models.SubjectPlan))
	}
}
