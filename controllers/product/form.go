package productcontroller

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// productForm is the multipart body of POST /product and PATCH /product/:id.
type productForm struct {
	ProductName     string `form:"productName"`
	CategoryName    string `form:"categoryName"`
	SubCategory     string `form:"subCategory"`
	ProductType     string `form:"productType"`
	Header          string `form:"header"`
	LinkText        string `form:"linkText"`
	LinkURL         string `form:"linkUrl"`
	Description     string `form:"description"`
	Gender          string `form:"gender"`
	Seller          string `form:"seller"`
	Quantity        string `form:"quantity"`
	Address         string `form:"address"`
	Services        string `form:"services"`
	ActualPrice     string `form:"actualPrice"`
	Discount        string `form:"discount"`
	ShippingFee     string `form:"shippingFee"`
	HandleDelivery  string `form:"handleDelivery"`
	DeliveryService string `form:"deliveryService"`
}

// fieldError names the offending form field for the error envelope.
type fieldError struct {
	Field string
	Value string
	Err   error
}

func (e *fieldError) Error() string { return e.Err.Error() }
func (e *fieldError) Unwrap() error { return e.Err }

func invalidField(field, value, msg string) error {
	return &fieldError{Field: field, Value: value, Err: fmt.Errorf("%w: %s", models.ErrValidation, msg)}
}

// validateNew checks the fields a new listing cannot do without.
func (f productForm) validateNew() error {
	switch {
	case f.ProductName == "":
		return invalidField("productName", "", "productName is required")
	case f.CategoryName == "" || f.SubCategory == "":
		return invalidField("categoryName", f.CategoryName, "categoryName and subCategory are required")
	case !models.ProductType(f.ProductType).Valid():
		return invalidField("productType", f.ProductType, "productType must be product or service")
	case f.ActualPrice == "":
		return invalidField("actualPrice", "", "actualPrice is required")
	}
	return nil
}

// apply copies every non-empty field onto p and re-validates its prices.
func (f productForm) apply(p *models.Product) error {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&p.ProductName, f.ProductName)
	setString(&p.Header, f.Header)
	setString(&p.Link.Text, f.LinkText)
	setString(&p.Link.URL, f.LinkURL)
	setString(&p.Description, f.Description)
	setString(&p.AdditionalDetails.Gender, f.Gender)
	setString(&p.AdditionalDetails.Seller, f.Seller)
	setString(&p.AdditionalDetails.Address, f.Address)
	setString(&p.AdditionalDetails.Services, f.Services)
	setString(&p.DeliveryPreference.DeliveryService, f.DeliveryService)

	if f.ProductType != "" {
		if !models.ProductType(f.ProductType).Valid() {
			return invalidField("productType", f.ProductType, "productType must be product or service")
		}
		p.ProductType = models.ProductType(f.ProductType)
	}
	if f.Quantity != "" {
		q, err := strconv.Atoi(f.Quantity)
		if err != nil || q < 0 {
			return invalidField("quantity", f.Quantity, "quantity must be a non-negative integer")
		}
		p.AdditionalDetails.Quantity = q
	}
	if f.HandleDelivery != "" {
		v, err := strconv.ParseBool(f.HandleDelivery)
		if err != nil {
			return invalidField("handleDelivery", f.HandleDelivery, "handleDelivery must be a boolean")
		}
		p.DeliveryPreference.HandleDelivery = v
	}

	prices := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"actualPrice", f.ActualPrice, &p.Prices.ActualPrice},
		{"discount", f.Discount, &p.Prices.Discount},
		{"shippingFee", f.ShippingFee, &p.Prices.ShippingFee},
	}
	for _, price := range prices {
		if price.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(price.raw)
		if err != nil {
			return invalidField(price.name, price.raw, price.name+" must be a number")
		}
		*price.dst = d
	}
	if err := p.Prices.Validate(); err != nil {
		return &fieldError{Field: "prices", Value: f.ActualPrice, Err: err}
	}
	return nil
}
