package models

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrUnauthorized        = errors.New("unauthorized")
)
