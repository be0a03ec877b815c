package planControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/urbantrove-ng/Urbantrove-Api/middleware"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/response"
)

// -------- Request Structs --------

type CreatePlanRequest struct {
	BillingPlan models.BillingPlan `json:"billingPlan" binding:"required"`
	Amount      decimal.Decimal    `json:"amount"`
}

// -------- Response Shapes --------

type ActivePlan struct {
	BillingPlan models.BillingPlan `json:"billingPlan"`
	Amount      decimal.Decimal    `json:"amount"`
	ExpiresAt   *time.Time         `json:"expiresAt"`
}

type Subscription struct {
	Active       bool         `json:"active"`
	BillingPlans []ActivePlan `json:"billingPlans"`
}

// -------- Core Logic --------

// CheckSubscription reports the user's completed plans. A user with no plans
// at all gets ErrNotFound; one whose plans are all pending is simply inactive.
func CheckSubscription(db *gorm.DB, userID string) (*Subscription, error) {
	var plans []models.Plan
	if err := db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("%w: no plans for user %s", models.ErrNotFound, userID)
	}

	sub := &Subscription{BillingPlans: []ActivePlan{}}
	for _, p := range plans {
		if p.Status != models.PlanStatusCompleted {
			continue
		}
		sub.BillingPlans = append(sub.BillingPlans, ActivePlan{
			BillingPlan: p.BillingPlan,
			Amount:      p.Amount,
			ExpiresAt:   p.ExpiresAt,
		})
	}
	sub.Active = len(sub.BillingPlans) > 0
	return sub, nil
}

// -------- Handlers --------

// POST /plan
func CreatePlan(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Invalid(c, err, "body")
			return
		}
		if req.BillingPlan.Months() == 0 {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "billingPlan", Msg: "billingPlan must be monthly, quarterly or yearly",
				Value: req.BillingPlan, Location: "body",
			})
			return
		}
		if !req.Amount.IsPositive() {
			response.Fail(c, http.StatusUnprocessableEntity, response.Detail{
				Path: "amount", Msg: "amount must be greater than zero", Value: req.Amount, Location: "body",
			})
			return
		}

		plan := models.Plan{
			BillingPlan: req.BillingPlan,
			UserID:      middleware.UserID(c),
			Amount:      req.Amount,
			Status:      models.PlanStatusPending,
		}
		if err := db.Create(&plan).Error; err != nil {
			response.Internal(c, err)
			return
		}
		log.Printf("✅ Plan %d (%s) created for %s", plan.ID, plan.BillingPlan, plan.UserID)

		response.Success(c, http.StatusCreated, "success", gin.H{
			"plan": plan,
			"msg":  "Plan created successfully.",
		})
	}
}

// GET /subscription
func GetSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := CheckSubscription(db, middleware.UserID(c))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				response.Fail(c, http.StatusNotFound, response.Detail{
					Msg: "No subscriptions found for this user", Location: "token",
				})
				return
			}
			response.Internal(c, err)
			return
		}
		response.Success(c, http.StatusOK, "success", sub)
	}
}
