package repository

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("barcode already exists")
	// ErrInsufficientStock is returned when an adjustment would drive a
	// product's stock below zero. The guard lives in the UPDATE itself so
	// concurrent adjustments cannot slip past it.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrOrderNotFound    = errors.New("purchase order not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrDraftNotFound    = errors.New("draft not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already exists")
)
