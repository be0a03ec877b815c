package paymentControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbantrove-ng/Urbantrove-Api/events"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
	"github.com/urbantrove-ng/Urbantrove-Api/notify"
	"github.com/urbantrove-ng/Urbantrove-Api/payment"
)

// Result is what one reconciliation did.
type Result struct {
	Payment   payment.Outcome `json:"payment"`
	Order     *models.Order   `json:"order,omitempty"`
	Plan      *models.Plan    `json:"plan,omitempty"`
	Duplicate bool            `json:"duplicate"`
}

// Reconciler applies resolved gateway outcomes to the order and plan ledgers
// and fans out notifications for paid orders.
type Reconciler struct {
	db       *gorm.DB
	notifier notify.Notifier
	hub      events.Publisher
	now      func() time.Time
}

func NewReconciler(db *gorm.DB, notifier notify.Notifier, hub events.Publisher) *Reconciler {
	return &Reconciler{db: db, notifier: notifier, hub: hub, now: time.Now}
}

// targetStatus maps a gateway status onto the ledger; only success settles.
func targetStatus(s payment.Status) string {
	if s == payment.StatusSuccess {
		return "completed"
	}
	return "pending"
}

// Apply records outcome exactly once. A reference seen before, or a subject
// that is already completed, leaves the ledger untouched and sends nothing.
func (r *Reconciler) Apply(ctx context.Context, outcome payment.Outcome) (*Result, error) {
	if outcome.Reference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", models.ErrValidation)
	}
	status := targetStatus(outcome.Status)
	result := &Result{Payment: outcome}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var completed bool
		switch outcome.SubjectKind {
		case models.SubjectOrder:
			var order models.Order
			if err := lockSubject(tx, &order, outcome.SubjectID); err != nil {
				return err
			}
			result.Order = &order
			completed = order.Status == models.OrderStatusCompleted
		case models.SubjectPlan:
			var plan models.Plan
			if err := lockSubject(tx, &plan, outcome.SubjectID); err != nil {
				return err
			}
			result.Plan = &plan
			completed = plan.Status == models.PlanStatusCompleted
		default:
			return fmt.Errorf("%w: unknown payment subject %q", models.ErrValidation, outcome.SubjectKind)
		}
		if completed {
			result.Duplicate = true
			return nil
		}

		marker := models.PaymentEvent{
			Reference:   outcome.Reference,
			SubjectKind: outcome.SubjectKind,
			SubjectID:   outcome.SubjectID,
			Status:      string(outcome.Status),
			ProcessedAt: r.now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&marker)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result.Duplicate = true
			return nil
		}

		if result.Order != nil {
			result.Order.Status = models.OrderStatus(status)
			return tx.Model(result.Order).Update("status", result.Order.Status).Error
		}
		if status == "completed" {
			result.Plan.Activate(r.now())
		} else {
			result.Plan.Status = models.PlanStatusPending
		}
		return tx.Model(result.Plan).Updates(map[string]interface{}{
			"status":     result.Plan.Status,
			"expires_at": result.Plan.ExpiresAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		log.Printf("🔁 Payment %s for %s %d already applied", outcome.Reference, outcome.SubjectKind, outcome.SubjectID)
		return result, nil
	}
	log.Printf("✅ %s %d marked %s (ref %s)", outcome.SubjectKind, outcome.SubjectID, status, outcome.Reference)

	if result.Order != nil && result.Order.Status == models.OrderStatusCompleted {
		if err := r.db.WithContext(ctx).Preload("Items.Product").First(result.Order, result.Order.ID).Error; err != nil {
			log.Printf("❌ Failed to reload order %d for notifications: %v", result.Order.ID, err)
			return result, nil
		}
		r.notifyOrder(ctx, *result.Order)
		r.hub.Publish(events.OrderCompleted, events.SummarizeOrder(*result.Order))
	}
	return result, nil
}

// lockSubject loads an order or plan row for update.
func lockSubject(tx *gorm.DB, dest interface{}, id uint) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: payment subject %d", models.ErrNotFound, id)
	}
	return err
}

// notifyOrder mails the buyer, then each distinct vendor once. Failures are
// logged and never undo the status change.
func (r *Reconciler) notifyOrder(ctx context.Context, order models.Order) {
	var buyer models.User
	if err := r.db.WithContext(ctx).First(&buyer, "id = ?", order.UserID).Error; err != nil {
		log.Printf("❌ Buyer %s of order %s not found: %v", order.UserID, order.OrderNo, err)
	} else if buyer.Email == "" {
		log.Printf("📧 Buyer %s of order %s has no email, skipping", buyer.ID, order.OrderNo)
	} else if err := r.notifier.OrderConfirmed(ctx, buyer, order); err != nil {
		log.Printf("❌ Failed to notify buyer %s of order %s: %v", buyer.ID, order.OrderNo, err)
	}

	for _, vendorID := range order.VendorIDs() {
		var vendor models.User
		if err := r.db.WithContext(ctx).First(&vendor, "id = ?", vendorID).Error; err != nil {
			log.Printf("❌ Vendor %s of order %s not found: %v", vendorID, order.OrderNo, err)
			continue
		}
		if err := r.notifier.VendorOrder(ctx, vendor, order, order.ItemsForVendor(vendorID)); err != nil {
			log.Printf("❌ Failed to notify vendor %s of order %s: %v", vendorID, order.OrderNo, err)
		}
	}
}
