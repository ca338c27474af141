package checkout

import (
	"context"
	"strings"
	"time"

	"club-app-go/internal/domain/billing"
	"club-app-go/internal/domain/members"
	"club-app-go/internal/domain/passes"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository creates the pass and its invoice together; checkout is the one
// place both rows must appear atomically.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreatePass(ctx context.Context, pass *passes.Pass) error
	CreateInvoice(ctx context.Context, invoice *billing.Invoice) error
}

type MemberLookup interface {
	GetMemberByID(ctx context.Context, memberID uint) (*members.Member, error)
}

// Notifier is satisfied by the notifications package.
type Notifier interface {
	PurchaseCompleted(ctx context.Context, invoice *billing.Invoice) error
}

type Service struct {
	repo     Repository
	members  MemberLookup
	notifier Notifier
}

func NewService(repo Repository, memberLookup MemberLookup, notifier Notifier) *Service {
	return &Service{repo: repo, members: memberLookup, notifier: notifier}
}

type CheckoutInput struct {
	MemberID      uint
	ItemName      string
	Quantity      int
	UnitPrice     decimal.Decimal
	PaymentMethod string
}

type CheckoutResult struct {
	Pass    passes.Pass     `json:"pass"`
	Invoice billing.Invoice `json:"invoice"`
}

// Checkout records a completed (simulated) payment: one pass and its 1:1
// invoice, created in a single transaction, plus a purchase notification.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	itemName := strings.TrimSpace(input.ItemName)
	if itemName == "" {
		return nil, passes.ErrItemNameRequired
	}
	if input.Quantity <= 0 {
		return nil, passes.ErrInvalidQuantity
	}

	member, err := s.members.GetMemberByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.Approved {
		return nil, ErrMemberNotApproved
	}

	purchasedAt := time.Now().UTC()

	pass := passes.Pass{
		MemberID:          member.ID,
		ItemName:          itemName,
		TotalQuantity:     input.Quantity,
		RemainingQuantity: input.Quantity,
		UnitPrice:         input.UnitPrice,
		PurchasedAt:       purchasedAt,
	}

	var invoice billing.Invoice

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreatePass(ctx, &pass); err != nil {
			return err
		}

		invoice = billing.Invoice{
			PurchaseID:    pass.ID,
			MemberID:      member.ID,
			MemberName:    member.Name,
			ItemName:      itemName,
			UnitPrice:     input.UnitPrice,
			Quantity:      input.Quantity,
			PurchasedAt:   purchasedAt,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: billing.StatusPaid,
			TransactionID: uuid.NewString(),
		}

		return tx.CreateInvoice(ctx, &invoice)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PurchaseCompleted(ctx, &invoice); err != nil {
			return nil, err
		}
	}

	return &CheckoutResult{Pass: pass, Invoice: invoice}, nil
}
