package order

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPaymentRequired  = errors.New("payment method is required")
	ErrAlreadyConfirmed = errors.New("order is already confirmed")
	ErrOrderCancelled   = errors.New("order is cancelled")
	ErrOrderNotOwned    = errors.New("order does not belong to user")
	ErrNoOrders         = errors.New("no orders for user")
)
