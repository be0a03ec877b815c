package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanStatus string

const (
	PlanStatusPending   PlanStatus = "pending"
	PlanStatusCompleted PlanStatus = "completed"
)

type BillingPlan string

const (
	BillingPlanMonthly   BillingPlan = "monthly"
	BillingPlanQuarterly BillingPlan = "quarterly"
	BillingPlanYearly    BillingPlan = "yearly"
)

// Months is the length of one billing cycle; 0 for unknown plans.
func (b BillingPlan) Months() int {
	switch b {
	case BillingPlanMonthly:
		return 1
	case BillingPlanQuarterly:
		return 3
	case BillingPlanYearly:
		return 12
	default:
		return 0
	}
}

// Plan is a vendor subscription intent, settled through the payment gateway.
type Plan struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BillingPlan BillingPlan     `gorm:"type:VARCHAR(20);not null" json:"billingPlan"`
	UserID      string          `gorm:"index;not null" json:"userId"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Status      PlanStatus      `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	ExpiresAt   *time.Time      `json:"expiresAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Activate marks the plan completed and starts a fresh billing cycle from now.
func (p *Plan) Activate(now time.Time) {
	p.Status = PlanStatusCompleted
	expires := now.AddDate(0, p.BillingPlan.Months(), 0)
	p.ExpiresAt = &expires
}
