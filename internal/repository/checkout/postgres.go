package checkout

import (
	"context"

	billingdomain "club-app-go/internal/domain/billing"
	checkoutdomain "club-app-go/internal/domain/checkout"
	passesdomain "club-app-go/internal/domain/passes"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(checkoutdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreatePass(ctx context.Context, pass *passesdomain.Pass) error {
	return r.db.WithContext(ctx).Create(pass).Error
}

func (r *PostgresRepository) CreateInvoice(ctx context.Context, invoice *billingdomain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}
