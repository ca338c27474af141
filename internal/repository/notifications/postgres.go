package notifications

import (
	"context"
	"errors"

	notificationsdomain "club-app-go/internal/domain/notifications"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateNotification(ctx context.Context, notification *notificationsdomain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *PostgresRepository) GetNotificationByID(ctx context.Context, notificationID uint) (*notificationsdomain.Notification, error) {
	var notification notificationsdomain.Notification
	if err := r.db.WithContext(ctx).First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationsdomain.ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *PostgresRepository) ListNotifications(ctx context.Context, archived bool, filter notificationsdomain.ListFilter) ([]notificationsdomain.Notification, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&notificationsdomain.Notification{}).
		Where("is_archived = ?", archived)
	if filter.RelatedMemberID != 0 {
		query = query.Where("related_member_id = ?", filter.RelatedMemberID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []notificationsdomain.Notification
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) SetRead(ctx context.Context, notificationID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationsdomain.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	return result.RowsAffected > 0, result.Error
}

// One predicate update, never an enumerate-then-write loop: a notification
// inserted while this runs stays unread.
func (r *PostgresRepository) MarkAllRead(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationsdomain.Notification{}).
		Where("is_read = ? AND is_archived = ?", false, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) SetArchived(ctx context.Context, notificationID uint, archived bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationsdomain.Notification{}).
		Where("id = ?", notificationID).
		Update("is_archived", archived)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteArchived(ctx context.Context, notificationID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_archived = ?", notificationID, true).
		Delete(&notificationsdomain.Notification{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationsdomain.Notification{}).
		Where("is_read = ? AND is_archived = ?", false, false).
		Count(&count).Error
	return count, err
}
