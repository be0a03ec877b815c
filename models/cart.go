package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartProduct is the product snapshot captured when an item first enters a cart.
type CartProduct struct {
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl"`
	VendorID    string          `json:"vendorId"`
	ID          uint            `json:"id"`
	Price       decimal.Decimal `json:"price"`
}

// CartItem lives only in the session cart store, never in the database.
type CartItem struct {
	ID       uint            `json:"id"` // Same as Product.ID
	Product  CartProduct     `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
	Shipping decimal.Decimal `json:"shipping"`
	AddedAt  time.Time       `json:"addedAt"`
}

// NewCartItem builds a quantity-1 line for product at its effective price.
func NewCartItem(product Product, now time.Time) CartItem {
	price := product.Prices.Effective()
	return CartItem{
		ID: product.ID,
		Product: CartProduct{
			ProductName: product.ProductName,
			ImageURL:    product.FirstImageURL(),
			VendorID:    product.UserID,
			ID:          product.ID,
			Price:       price,
		},
		Quantity: 1,
		Total:    price,
		Shipping: product.Prices.ShippingFee,
		AddedAt:  now,
	}
}

// Recalculate sets Total from Quantity and the snapshot price.
func (i *CartItem) Recalculate() {
	i.Total = i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
