package billing

import (
	"context"
	"errors"
	"time"

	billingdomain "club-app-go/internal/domain/billing"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(billingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateInvoice(ctx context.Context, invoice *billingdomain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *PostgresRepository) GetInvoiceByID(ctx context.Context, invoiceID uint) (*billingdomain.Invoice, error) {
	var invoice billingdomain.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billingdomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *PostgresRepository) ListInvoices(ctx context.Context, filter billingdomain.ListFilter) ([]billingdomain.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&billingdomain.Invoice{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.Status != "" {
		query = query.Where("payment_status = ?", filter.Status)
	}
	if filter.Flagged != nil {
		query = query.Where("is_flagged = ?", *filter.Flagged)
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

	var items []billingdomain.Invoice
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, invoiceID uint, status billingdomain.PaymentStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billingdomain.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SetFlag(ctx context.Context, invoiceID uint, flagged bool, reason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billingdomain.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"is_flagged":  flagged,
			"flag_reason": reason,
			"updated_at":  time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SetNotes(ctx context.Context, invoiceID uint, notes string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billingdomain.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{
			"notes":      notes,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

// The status guard is part of the update itself, so the paid check cannot
// race with another transition.
func (r *PostgresRepository) RequestRefund(ctx context.Context, invoiceID uint, reason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billingdomain.Invoice{}).
		Where("id = ? AND payment_status = ?", invoiceID, billingdomain.StatusPaid).
		Updates(map[string]interface{}{
			"payment_status": billingdomain.StatusRefundRequested,
			"refund_reason":  reason,
			"updated_at":     time.Now().UTC(),
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ResolveRefundRequest(ctx context.Context, invoiceID uint, to billingdomain.PaymentStatus, clearReason bool) (bool, error) {
	updates := map[string]interface{}{
		"payment_status": to,
		"updated_at":     time.Now().UTC(),
	}
	if clearReason {
		updates["refund_reason"] = ""
	}

	result := r.db.WithContext(ctx).
		Model(&billingdomain.Invoice{}).
		Where("id = ? AND payment_status = ?", invoiceID, billingdomain.StatusRefundRequested).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}
