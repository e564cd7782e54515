package product

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrValidation       = errors.New("validation failed")
)
