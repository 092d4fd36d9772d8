package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrItemNotFound    = errors.New("product not found in cart")
)
