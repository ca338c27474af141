package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notifier receives commerce events that warrant an administrative
// notification. Satisfied by the notifications package.
type Notifier interface {
	ChargebackRecorded(ctx context.Context, invoice *Invoice) error
	RefundRequested(ctx context.Context, invoice *Invoice) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	purchasedAt := input.PurchasedAt
	if purchasedAt.IsZero() {
		purchasedAt = time.Now().UTC()
	}

	invoice := Invoice{
		PurchaseID:    input.PurchaseID,
		MemberID:      input.MemberID,
		MemberName:    strings.TrimSpace(input.MemberName),
		ItemName:      strings.TrimSpace(input.ItemName),
		UnitPrice:     input.UnitPrice,
		Quantity:      input.Quantity,
		PurchasedAt:   purchasedAt,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: StatusPaid,
		TransactionID: uuid.NewString(),
	}

	if err := s.repo.CreateInvoice(ctx, &invoice); err != nil {
		return nil, err
	}

	return &invoice, nil
}

// SetStatus overwrites the payment status unconditionally. Statuses are not
// a workflow: administrators may move an invoice between any two statuses,
// and a chargeback never touches the purchase's pass ledger on its own.
func (s *Service) SetStatus(ctx context.Context, invoiceID uint, status PaymentStatus) (*Invoice, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.SetStatus(ctx, invoiceID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvoiceNotFound
	}

	invoice, err := s.repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if status == StatusChargeback && s.notifier != nil {
		if err := s.notifier.ChargebackRecorded(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return invoice, nil
}

// Flag marks the invoice for review. Flag state is independent of payment
// status: a paid invoice can be flagged while a refund request is examined.
func (s *Service) Flag(ctx context.Context, invoiceID uint, reason string) (*Invoice, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	updated, err := s.repo.SetFlag(ctx, invoiceID, true, reason)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvoiceNotFound
	}

	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

func (s *Service) Unflag(ctx context.Context, invoiceID uint) (*Invoice, error) {
	updated, err := s.repo.SetFlag(ctx, invoiceID, false, "")
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvoiceNotFound
	}

	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

func (s *Service) UpdateNotes(ctx context.Context, invoiceID uint, notes string) (*Invoice, error) {
	updated, err := s.repo.SetNotes(ctx, invoiceID, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvoiceNotFound
	}

	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

// RequestRefund is member-initiated: the member proposes, an admin disposes.
// Only a paid invoice may enter refund_requested, and only ApproveRefund or
// DenyRefund may leave it. The status guard runs inside the update itself.
func (s *Service) RequestRefund(ctx context.Context, actingMemberID, invoiceID uint, reason string) (*Invoice, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	invoice, err := s.repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.MemberID != actingMemberID {
		return nil, ErrInvoiceNotFound
	}

	updated, err := s.repo.RequestRefund(ctx, invoiceID, reason)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrIllegalTransition
	}

	invoice, err = s.repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.RefundRequested(ctx, invoice); err != nil {
			return nil, err
		}
	}

	return invoice, nil
}

func (s *Service) ApproveRefund(ctx context.Context, invoiceID uint) (*Invoice, error) {
	return s.resolveRefund(ctx, invoiceID, StatusRefunded, false)
}

// DenyRefund reverts to paid, the only status a refund request can be
// entered from, and discards the member's reason.
func (s *Service) DenyRefund(ctx context.Context, invoiceID uint) (*Invoice, error) {
	return s.resolveRefund(ctx, invoiceID, StatusPaid, true)
}

func (s *Service) resolveRefund(ctx context.Context, invoiceID uint, to PaymentStatus, clearReason bool) (*Invoice, error) {
	if _, err := s.repo.GetInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}

	updated, err := s.repo.ResolveRefundRequest(ctx, invoiceID, to, clearReason)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrIllegalTransition
	}

	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

func (s *Service) GetInvoice(ctx context.Context, invoiceID uint) (*Invoice, error) {
	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

func (s *Service) ListInvoices(ctx context.Context, filter ListFilter) ([]Invoice, int64, error) {
	return s.repo.ListInvoices(ctx, filter)
}
