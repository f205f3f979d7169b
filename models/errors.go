package models

import "errors"

var (
	// ErrNotFound is returned when a barcode is not present in the inventory.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation failed")
)
