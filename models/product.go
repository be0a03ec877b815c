package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers, matching the storefront client.
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductType string

const (
	ProductTypeProduct ProductType = "product" // Physical item, can be added to a cart
	ProductTypeService ProductType = "service" // Bookable service, never cartable
)

func (t ProductType) Valid() bool {
	return t == ProductTypeProduct || t == ProductTypeService
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type AdditionalDetails struct {
	Gender   string `json:"gender"`
	Seller   string `json:"seller"`
	Quantity int    `json:"quantity"`
	Address  string `json:"address"`
	Services string `json:"services"`
}

type Prices struct {
	ActualPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"actualPrice"`
	Discount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"discount"`
	ShippingFee decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"shippingFee"`
}

// Effective is the unit price a buyer pays: actual price minus discount.
func (p Prices) Effective() decimal.Decimal {
	return p.ActualPrice.Sub(p.Discount)
}

// Validate enforces actualPrice >= discount >= 0.
func (p Prices) Validate() error {
	if p.Discount.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}
	if p.ActualPrice.LessThan(p.Discount) {
		return fmt.Errorf("%w: discount must not exceed actual price", ErrValidation)
	}
	if p.ShippingFee.IsNegative() {
		return fmt.Errorf("%w: shipping fee must not be negative", ErrValidation)
	}
	return nil
}

type DeliveryPreference struct {
	HandleDelivery  bool   `json:"handleDelivery"`
	DeliveryService string `json:"deliveryService"`
}

// ProductImage keeps the ordered image list of a product; Position preserves upload order.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `json:"-"`
}

type Product struct {
	ID                 uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName        string             `gorm:"not null;index" json:"productName"`
	CategoryID         uint               `gorm:"index" json:"categoryId"`
	Category           *Category          `json:"category,omitempty"`
	ProductType        ProductType        `gorm:"type:VARCHAR(20);index;not null" json:"productType"`
	Header             string             `json:"header"`
	Link               Link               `gorm:"embedded;embeddedPrefix:link_" json:"link"`
	Description        string             `json:"description"`
	Images             []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	AdditionalDetails  AdditionalDetails  `gorm:"embedded;embeddedPrefix:details_" json:"additionalDetails"`
	Prices             Prices             `gorm:"embedded" json:"prices"`
	UserID             string             `gorm:"index;not null" json:"userId"` // Owning vendor
	User               *User              `json:"user,omitempty"`
	DeliveryPreference DeliveryPreference `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryPreference"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"` // Soft delete; order lines keep referencing the row
}

// FirstImageURL returns the cover image, or "" for products without images.
func (p Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
