package models

import "errors"

var (
	ErrMalformedPayload     = errors.New("payload is malformed")
	ErrUntrustedPayload     = errors.New("payload failed authenticated decryption")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrPaymentNotConfigured = errors.New("payment gateway is not configured")
	ErrNoRefundableOrders   = errors.New("no orders eligible for refund")
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrConflictData         = errors.New("data conflicts with existing data")
	ErrInternalError        = errors.New("internal error")
)
