package notifications

import (
	"context"
	"errors"

	"club-app-go/internal/domain/billing"
	"club-app-go/internal/domain/documents"
	"club-app-go/internal/domain/members"
)

type MemberLookup interface {
	GetMemberByID(ctx context.Context, memberID uint) (*members.Member, error)
}

type InvoiceLookup interface {
	GetInvoiceByID(ctx context.Context, invoiceID uint) (*billing.Invoice, error)
}

type DocumentLookup interface {
	GetDocumentByID(ctx context.Context, documentID uint) (*documents.Document, error)
}

// Resolver turns a notification's weak references into live entities at
// read time. Resolution is read-only: it never repairs or clears a stale
// id, so the record of what a notification was about survives deletion of
// the referent.
type Resolver struct {
	members   MemberLookup
	invoices  InvoiceLookup
	documents DocumentLookup
}

func NewResolver(members MemberLookup, invoices InvoiceLookup, documents DocumentLookup) *Resolver {
	return &Resolver{members: members, invoices: invoices, documents: documents}
}

// ResolvedReferences carries whatever referents still exist; a deleted or
// never-set referent is a nil slot, not an error.
type ResolvedReferences struct {
	Member   *members.Member
	Invoice  *billing.Invoice
	Document *documents.Document
}

func (r *Resolver) Resolve(ctx context.Context, notification *Notification) (*ResolvedReferences, error) {
	resolved := &ResolvedReferences{}

	if notification.RelatedMemberID != nil {
		member, err := r.members.GetMemberByID(ctx, *notification.RelatedMemberID)
		if err != nil && !errors.Is(err, members.ErrMemberNotFound) {
			return nil, err
		}
		resolved.Member = member
	}

	if notification.RelatedPurchaseID != nil {
		invoice, err := r.invoices.GetInvoiceByID(ctx, *notification.RelatedPurchaseID)
		if err != nil && !errors.Is(err, billing.ErrInvoiceNotFound) {
			return nil, err
		}
		resolved.Invoice = invoice
	}

	if notification.RelatedDocumentID != nil {
		document, err := r.documents.GetDocumentByID(ctx, *notification.RelatedDocumentID)
		if err != nil && !errors.Is(err, documents.ErrDocumentNotFound) {
			return nil, err
		}
		resolved.Document = document
	}

	return resolved, nil
}
