package category

import "errors"

var (
	ErrNotFound   = errors.New("category not found")
	ErrInUse      = errors.New("category still has products")
	ErrSlugExists = errors.New("category slug already exists")
	ErrValidation = errors.New("validation failed")
)
