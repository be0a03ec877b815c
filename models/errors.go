package models

import "errors"

var (
	// ErrNotFound covers missing categories, products, orders, plans and cart items.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when input breaks a field-level rule.
	ErrValidation = errors.New("validation failed")
	// ErrUpstream wraps payment and email provider failures.
	ErrUpstream = errors.New("upstream failure")
)
