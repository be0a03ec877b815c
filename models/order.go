package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Placed at checkout, awaiting payment
	OrderStatusCompleted OrderStatus = "completed" // Payment settled
	OrderStatusCancelled OrderStatus = "cancelled" // Abandoned before payment
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNo         string          `gorm:"uniqueIndex;not null" json:"orderNo"`
	UserID          string          `gorm:"index;not null" json:"userId"` // Buyer
	User            *User           `json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	TotalCommission decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalCommission"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Address         Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"index" json:"orderId"`
	ProductID  uint            `gorm:"index" json:"productId"`
	Product    *Product        `json:"product,omitempty"`
	VendorID   string          `gorm:"index;not null" json:"vendorId"`
	Quantity   int             `json:"quantity"`
	Commission decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"commission"`
	Total      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
}

// VendorIDs lists the distinct vendors of the order in first-seen item order.
func (o Order) VendorIDs() []string {
	seen := make(map[string]bool, len(o.Items))
	var ids []string
	for _, item := range o.Items {
		if seen[item.VendorID] {
			continue
		}
		seen[item.VendorID] = true
		ids = append(ids, item.VendorID)
	}
	return ids
}

// ItemsForVendor returns the order lines owned by vendorID.
func (o Order) ItemsForVendor(vendorID string) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			items = append(items, item)
		}
	}
	return items
}
