// Package notify renders and sends transactional email to buyers and vendors.
package notify

import (
	"context"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// Notifier is the notification dispatcher used by payment reconciliation.
type Notifier interface {
	// OrderConfirmed tells the buyer their order was paid.
	OrderConfirmed(ctx context.Context, buyer models.User, order models.Order) error
	// VendorOrder tells a vendor which of their items were bought in order.
	VendorOrder(ctx context.Context, vendor models.User, order models.Order, items []models.OrderItem) error
}
