package notifications

import "context"

type Repository interface {
	CreateNotification(ctx context.Context, notification *Notification) error
	GetNotificationByID(ctx context.Context, notificationID uint) (*Notification, error)

	// ListNotifications returns rows with the given archived state,
	// newest-first by creation time.
	ListNotifications(ctx context.Context, archived bool, filter ListFilter) ([]Notification, int64, error)

	SetRead(ctx context.Context, notificationID uint) (bool, error)

	// MarkAllRead marks every unread, unarchived notification read in one
	// predicate update. Rows inserted after the update stay unread.
	MarkAllRead(ctx context.Context) (int64, error)

	SetArchived(ctx context.Context, notificationID uint, archived bool) (bool, error)

	// DeleteArchived removes the row only when it is archived.
	DeleteArchived(ctx context.Context, notificationID uint) (bool, error)

	CountUnread(ctx context.Context) (int64, error)
}
