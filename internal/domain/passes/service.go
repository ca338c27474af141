package passes

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePass(ctx context.Context, input CreatePassInput) (*Pass, error) {
	if strings.TrimSpace(input.ItemName) == "" {
		return nil, ErrItemNameRequired
	}
	if input.TotalQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	purchasedAt := input.PurchasedAt
	if purchasedAt.IsZero() {
		purchasedAt = time.Now().UTC()
	}

	pass := Pass{
		MemberID:          input.MemberID,
		ItemName:          strings.TrimSpace(input.ItemName),
		TotalQuantity:     input.TotalQuantity,
		RemainingQuantity: input.TotalQuantity,
		UnitPrice:         input.UnitPrice,
		PurchasedAt:       purchasedAt,
	}

	if err := s.repo.CreatePass(ctx, &pass); err != nil {
		return nil, err
	}

	return &pass, nil
}

// ConsumeUse deducts one use from the pass. The decrement is conditioned on
// remaining_quantity > 0 in the same update, so two concurrent calls against
// the last use can never both succeed.
func (s *Service) ConsumeUse(ctx context.Context, passID uint) (*Pass, error) {
	updated, err := s.repo.DecrementRemaining(ctx, passID)
	if err != nil {
		return nil, err
	}

	pass, getErr := s.repo.GetPassByID(ctx, passID)
	if getErr != nil {
		return nil, getErr
	}

	if !updated {
		return nil, ErrPassExhausted
	}

	return pass, nil
}

// Refund deletes the pass outright; a full refund gives back all remaining
// uses, there is no partial refund. Refunding an already-deleted pass
// reports ErrPassNotFound.
func (s *Service) Refund(ctx context.Context, passID uint) error {
	deleted, err := s.repo.DeletePass(ctx, passID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPassNotFound
	}
	return nil
}

func (s *Service) GetPass(ctx context.Context, passID uint) (*Pass, error) {
	return s.repo.GetPassByID(ctx, passID)
}

func (s *Service) ListPasses(ctx context.Context, filter ListFilter) ([]Pass, int64, error) {
	return s.repo.ListPasses(ctx, filter)
}
