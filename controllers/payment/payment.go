package paymentControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/payment"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// -------- Request Structs --------

type StartPaymentRequest struct {
	ID uint `json:"id" binding:"required"`
}

// -------- Helpers --------

// subjectAmount loads the order or plan a payment is for.
func subjectAmount(db *gorm.DB, kind models.SubjectKind, id uint) (decimal.Decimal, string, bool, error) {
	switch kind {
	case models.SubjectOrder:
		var order models.Order
		if err := db.First(&order, id).Error; err != nil {
			return decimal.Zero, "", false, err
		}
		return order.Total, "Urban Trove order " + order.OrderNo, order.Status == models.OrderStatusCompleted, nil
	default:
		var plan models.Plan
		if err := db.First(&plan, id).Error; err != nil {
			return decimal.Zero, "", false, err
		}
		return plan.Amount, fmt.Sprintf("Urban Trove %s plan", plan.BillingPlan), plan.Status == models.PlanStatusCompleted, nil
	}
}

// gatewayError maps adapter failures onto 422 or 502.
func gatewayError(c *gin.Context, err error, path string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		response.Fail(c, http.StatusUnprocessableEntity, response.Detail{Path: path, Msg: err.Error(), Location: "query"})
	case errors.Is(err, models.ErrUpstream):
		log.Printf("❌ Payment gateway: %v", err)
		response.Fail(c, http.StatusBadGateway, response.Detail{Msg: "Payment provider is unavailable"})
	default:
		response.Internal(c, err)
	}
}

// -------- Handlers --------

// StartPayment opens a hosted checkout for an order (POST /payment) or a plan
// (POST /plan/payment).
func StartPayment(db *gorm.DB, gateway payment.Gateway, kind models.SubjectKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Invalid(c, err, "body")
			return
		}

		amount, description, paid, err := subjectAmount(db, kind, req.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "id", Msg: "No order found!", Value: req.ID, Location: "body",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		if paid {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "id", Msg: "Payment has already been completed", Value: req.ID, Location: "body",
			})
			return
		}

		userID := middleware.UserID(c)
		payer := models.User{ID: userID}
		if err := db.First(&payer, "id = ?", userID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Internal(c, err)
			return
		}

		session, err := gateway.StartPayment(c.Request.Context(), payment.StartRequest{
			SubjectKind: kind,
			SubjectID:   req.ID,
			Amount:      amount,
			Description: description,
			Email:       payer.Email,
			FullName:    payer.DisplayName(),
		})
		if err != nil {
			gatewayError(c, err, "id")
			return
		}
		response.Success(c, http.StatusCreated, "Payment Started", session)
	}
}

// Callback reconciles the buyer's return from the hosted page (GET /payment,
// GET /plan/payment). The gateway reference arrives as ?ref=.
func Callback(gateway payment.Gateway, rec *Reconciler, kind models.SubjectKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		outcome, err := gateway.Resolve(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			gatewayError(c, err, "ref")
			return
		}
		if outcome.SubjectKind != kind {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "ref", Msg: fmt.Sprintf("Payment is for a %s, not a %s", outcome.SubjectKind, kind),
				Value: c.Query("ref"), Location: "query",
			})
			return
		}

		result, err := rec.Apply(c.Request.Context(), *outcome)
		if errors.Is(err, models.ErrNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "ref", Msg: "No order found!", Value: outcome.SubjectID, Location: "query",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Payment Created", result)
	}
}

// GET /payment_details?ref=
func PaymentDetails(gateway payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Query("ref")
		if ref == "" {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "ref", Msg: "ref is required", Location: "query",
			})
			return
		}

		receipt, err := gateway.Receipt(c.Request.Context(), ref)
		if err != nil {
			gatewayError(c, err, "ref")
			return
		}
		response.Success(c, http.StatusOK, "Payment Details", receipt)
	}
}

// Webhook handles Telr's server-to-server notification (POST /payment/webhook).
// The signature is checked by middleware.TelrWebhookAuth.
func Webhook(rec *Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.PostForm("tran_cartid")
		if cartID == "" {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "tran_cartid", Msg: "missing tran_cartid", Location: "body",
			})
			return
		}

		kind, id, err := payment.ParseCartID(cartID)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "tran_cartid", Msg: err.Error(), Value: cartID, Location: "body",
			})
			return
		}

		outcome := payment.Outcome{
			Status:      payment.StatusFailure,
			SubjectKind: kind,
			SubjectID:   id,
			Reference:   c.PostForm("tran_ref"),
			Amount:      c.PostForm("tran_amount"),
			Currency:    c.PostForm("tran_currency"),
		}
		if c.PostForm("tran_status") == "A" {
			outcome.Status = payment.StatusSuccess
		}
		if outcome.Reference == "" {
			outcome.Reference = cartID
		}

		result, err := rec.Apply(c.Request.Context(), outcome)
		if errors.Is(err, models.ErrNotFound) {
			response.Fail(c, http.StatusBadRequest, response.Detail{
				Path: "tran_cartid", Msg: "No order found!", Value: cartID, Location: "body",
			})
			return
		}
		if err != nil {
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", result)
	}
}
