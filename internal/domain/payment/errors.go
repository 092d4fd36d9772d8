package payment

import "errors"

var (
	ErrInvalidAmount  = errors.New("payment amount must be greater than zero")
	ErrStatusRequired = errors.New("payment status is required")
)
