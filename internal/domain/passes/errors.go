package passes

import "errors"

var (
	ErrPassNotFound     = errors.New("pass not found")
	ErrPassExhausted    = errors.New("no uses remaining on pass")
	ErrInvalidQuantity  = errors.New("total quantity must be positive")
	ErrItemNameRequired = errors.New("item name is required")
)
