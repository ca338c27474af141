package notifications

import (
	"context"
	"fmt"

	"club-app-go/internal/domain/billing"
	"club-app-go/internal/domain/documents"
	"club-app-go/internal/domain/members"
)

// Hooks adapts commerce and membership events to Notify calls. It satisfies
// the Notifier interfaces the other domain packages declare, so every
// trigger path shares the same invariant-enforcing entry point.
type Hooks struct {
	svc *Service
}

func NewHooks(svc *Service) *Hooks {
	return &Hooks{svc: svc}
}

func (h *Hooks) PurchaseCompleted(ctx context.Context, invoice *billing.Invoice) error {
	_, err := h.svc.Notify(ctx, NotifyInput{
		Type:              TypePurchase,
		Title:             "New purchase",
		Message:           fmt.Sprintf("%s bought %s (x%d)", invoice.MemberName, invoice.ItemName, invoice.Quantity),
		RelatedMemberID:   &invoice.MemberID,
		RelatedPurchaseID: &invoice.ID,
	})
	return err
}

func (h *Hooks) ChargebackRecorded(ctx context.Context, invoice *billing.Invoice) error {
	_, err := h.svc.Notify(ctx, NotifyInput{
		Type:              TypeChargeback,
		Title:             "Chargeback recorded",
		Message:           fmt.Sprintf("Invoice #%d (%s) was charged back", invoice.ID, invoice.ItemName),
		RelatedMemberID:   &invoice.MemberID,
		RelatedPurchaseID: &invoice.ID,
		ActionRequired:    true,
		ActionType:        "review_chargeback",
	})
	return err
}

func (h *Hooks) RefundRequested(ctx context.Context, invoice *billing.Invoice) error {
	_, err := h.svc.Notify(ctx, NotifyInput{
		Type:              TypePurchase,
		Title:             "Refund requested",
		Message:           fmt.Sprintf("%s requested a refund for %s: %s", invoice.MemberName, invoice.ItemName, invoice.RefundReason),
		RelatedMemberID:   &invoice.MemberID,
		RelatedPurchaseID: &invoice.ID,
		ActionRequired:    true,
		ActionType:        "review_refund",
	})
	return err
}

func (h *Hooks) DocumentUploaded(ctx context.Context, document *documents.Document) error {
	_, err := h.svc.Notify(ctx, NotifyInput{
		Type:              TypeDocument,
		Title:             "New document",
		Message:           fmt.Sprintf("%q was uploaded", document.Title),
		RelatedMemberID:   &document.UploadedBy,
		RelatedDocumentID: &document.ID,
	})
	return err
}

func (h *Hooks) CertificationExpiring(ctx context.Context, member *members.Member) error {
	message := fmt.Sprintf("License for %s is expiring", member.Name)
	if member.LicenseExpiry != nil {
		message = fmt.Sprintf("License for %s expires on %s", member.Name, member.LicenseExpiry.Format("2006-01-02"))
	}

	_, err := h.svc.Notify(ctx, NotifyInput{
		Type:            TypeExpiry,
		Title:           "Certification expiring",
		Message:         message,
		RelatedMemberID: &member.ID,
		ActionRequired:  true,
		ActionType:      "contact_member",
	})
	return err
}
