package billing

import "errors"

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrEmptyReason       = errors.New("reason is required")
	ErrIllegalTransition = errors.New("illegal payment status transition")
	ErrInvalidStatus     = errors.New("unknown payment status")
)
