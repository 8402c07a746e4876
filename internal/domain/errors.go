package domain

import "errors"

var (
	ErrValidation             = errors.New("invalid request")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrPaymentExpired         = errors.New("payment session expired")
	ErrAlreadyProcessed       = errors.New("payment already processed")
	ErrPricingUnavailable     = errors.New("pricing unavailable")
	ErrSettlementProofInvalid = errors.New("settlement proof invalid")
	ErrUpstreamTimeout        = errors.New("upstream timeout")
)
