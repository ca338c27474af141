package notifications

import (
	"context"
	"errors"
	"testing"

	"club-app-go/internal/domain/billing"
	"club-app-go/internal/domain/documents"
	"club-app-go/internal/domain/members"
)

type fakeMemberLookup struct {
	members map[uint]*members.Member
	err     error
}

func (f *fakeMemberLookup) GetMemberByID(ctx context.Context, memberID uint) (*members.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	member, ok := f.members[memberID]
	if !ok {
		return nil, members.ErrMemberNotFound
	}
	return member, nil
}

type fakeInvoiceLookup struct {
	invoices map[uint]*billing.Invoice
}

func (f *fakeInvoiceLookup) GetInvoiceByID(ctx context.Context, invoiceID uint) (*billing.Invoice, error) {
	invoice, ok := f.invoices[invoiceID]
	if !ok {
		return nil, billing.ErrInvoiceNotFound
	}
	return invoice, nil
}

type fakeDocumentLookup struct {
	documents map[uint]*documents.Document
}

func (f *fakeDocumentLookup) GetDocumentByID(ctx context.Context, documentID uint) (*documents.Document, error) {
	document, ok := f.documents[documentID]
	if !ok {
		return nil, documents.ErrDocumentNotFound
	}
	return document, nil
}

func uintPtr(v uint) *uint { return &v }

func TestResolveAllReferentsPresent(t *testing.T) {
	resolver := NewResolver(
		&fakeMemberLookup{members: map[uint]*members.Member{1: {ID: 1, Name: "Alex"}}},
		&fakeInvoiceLookup{invoices: map[uint]*billing.Invoice{2: {ID: 2}}},
		&fakeDocumentLookup{documents: map[uint]*documents.Document{3: {ID: 3, Title: "rules"}}},
	)

	notification := &Notification{
		RelatedMemberID:   uintPtr(1),
		RelatedPurchaseID: uintPtr(2),
		RelatedDocumentID: uintPtr(3),
	}

	resolved, err := resolver.Resolve(context.Background(), notification)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Member == nil || resolved.Member.ID != 1 {
		t.Fatalf("expected member 1, got %+v", resolved.Member)
	}
	if resolved.Invoice == nil || resolved.Invoice.ID != 2 {
		t.Fatalf("expected invoice 2, got %+v", resolved.Invoice)
	}
	if resolved.Document == nil || resolved.Document.ID != 3 {
		t.Fatalf("expected document 3, got %+v", resolved.Document)
	}
}

func TestResolveMissingReferentIsNilSlot(t *testing.T) {
	resolver := NewResolver(
		&fakeMemberLookup{members: map[uint]*members.Member{1: {ID: 1, Name: "Alex"}}},
		&fakeInvoiceLookup{invoices: map[uint]*billing.Invoice{}},
		&fakeDocumentLookup{documents: map[uint]*documents.Document{}},
	)

	// The purchase and document were deleted after the notification was
	// created; the ids are kept as-is and resolve to nothing.
	notification := &Notification{
		RelatedMemberID:   uintPtr(1),
		RelatedPurchaseID: uintPtr(99),
		RelatedDocumentID: uintPtr(98),
	}

	resolved, err := resolver.Resolve(context.Background(), notification)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Member == nil {
		t.Fatal("expected member resolved")
	}
	if resolved.Invoice != nil {
		t.Fatalf("expected nil invoice slot, got %+v", resolved.Invoice)
	}
	if resolved.Document != nil {
		t.Fatalf("expected nil document slot, got %+v", resolved.Document)
	}

	if notification.RelatedPurchaseID == nil || *notification.RelatedPurchaseID != 99 {
		t.Fatal("resolution must not clear the stored reference")
	}
}

func TestResolveNoReferences(t *testing.T) {
	resolver := NewResolver(&fakeMemberLookup{}, &fakeInvoiceLookup{}, &fakeDocumentLookup{})

	resolved, err := resolver.Resolve(context.Background(), &Notification{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Member != nil || resolved.Invoice != nil || resolved.Document != nil {
		t.Fatalf("expected all slots nil, got %+v", resolved)
	}
}

func TestResolvePropagatesLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	resolver := NewResolver(
		&fakeMemberLookup{err: lookupErr},
		&fakeInvoiceLookup{},
		&fakeDocumentLookup{},
	)

	_, err := resolver.Resolve(context.Background(), &Notification{RelatedMemberID: uintPtr(1)})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error propagated, got %v", err)
	}
}
