package passes

import (
	"context"
	"errors"
	"time"

	passesdomain "club-app-go/internal/domain/passes"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(passesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreatePass(ctx context.Context, pass *passesdomain.Pass) error {
	return r.db.WithContext(ctx).Create(pass).Error
}

func (r *PostgresRepository) GetPassByID(ctx context.Context, passID uint) (*passesdomain.Pass, error) {
	var pass passesdomain.Pass
	if err := r.db.WithContext(ctx).First(&pass, passID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, passesdomain.ErrPassNotFound
		}
		return nil, err
	}
	return &pass, nil
}

func (r *PostgresRepository) ListPasses(ctx context.Context, filter passesdomain.ListFilter) ([]passesdomain.Pass, int64, error) {
	query := r.db.WithContext(ctx).Model(&passesdomain.Pass{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("purchased_at desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []passesdomain.Pass
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// The guard and the decrement share one statement so two concurrent
// consumptions can never over-draw the same pass.
func (r *PostgresRepository) DecrementRemaining(ctx context.Context, passID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&passesdomain.Pass{}).
		Where("id = ? AND remaining_quantity > 0", passID).
		Updates(map[string]interface{}{
			"remaining_quantity": gorm.Expr("remaining_quantity - 1"),
			"updated_at":         time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeletePass(ctx context.Context, passID uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&passesdomain.Pass{}, passID)
	return result.RowsAffected > 0, result.Error
}
