package billing

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateInvoice(ctx context.Context, invoice *Invoice) error
	GetInvoiceByID(ctx context.Context, invoiceID uint) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]Invoice, int64, error)

	SetStatus(ctx context.Context, invoiceID uint, status PaymentStatus) (bool, error)
	SetFlag(ctx context.Context, invoiceID uint, flagged bool, reason string) (bool, error)
	SetNotes(ctx context.Context, invoiceID uint, notes string) (bool, error)

	// RequestRefund moves the invoice to refund_requested and records the
	// member's reason, guarded by payment_status = 'paid' in the same update.
	// It reports false when the guard did not match.
	RequestRefund(ctx context.Context, invoiceID uint, reason string) (bool, error)

	// ResolveRefundRequest moves the invoice out of refund_requested, guarded
	// by payment_status = 'refund_requested' in the same update.
	ResolveRefundRequest(ctx context.Context, invoiceID uint, to PaymentStatus, clearReason bool) (bool, error)
}
