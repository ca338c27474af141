package passes

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreatePass(ctx context.Context, pass *Pass) error
	GetPassByID(ctx context.Context, passID uint) (*Pass, error)
	ListPasses(ctx context.Context, filter ListFilter) ([]Pass, int64, error)

	// DecrementRemaining decrements remaining_quantity by one in a single
	// conditional update guarded by remaining_quantity > 0. It reports false
	// when no row was updated (missing pass or nothing left to consume).
	DecrementRemaining(ctx context.Context, passID uint) (bool, error)

	DeletePass(ctx context.Context, passID uint) (bool, error)
}
