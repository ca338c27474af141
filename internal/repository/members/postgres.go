package members

import (
	"context"
	"errors"
	"time"

	membersdomain "club-app-go/internal/domain/members"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, memberID uint) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) GetMemberByToken(ctx context.Context, token string) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).
		Where("api_token = ?", token).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, filter membersdomain.ListFilter) ([]membersdomain.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&membersdomain.Member{})
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("name asc, id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []membersdomain.Member
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"name":               member.Name,
			"phone":              member.Phone,
			"approved":           member.Approved,
			"license_held":       member.LicenseHeld,
			"license_expiry":     member.LicenseExpiry,
			"qualification_done": member.QualificationDone,
			"qualification_date": member.QualificationDate,
			"updated_at":         member.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) CountMembersByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListExpiringLicenses(ctx context.Context, now, until time.Time) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	err := r.db.WithContext(ctx).
		Where("license_held = ? AND license_expiry IS NOT NULL AND license_expiry >= ? AND license_expiry <= ?", true, now, until).
		Order("license_expiry asc").
		Find(&items).Error
	return items, err
}
