package notifications

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotArchived          = errors.New("notification is not archived")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidType          = errors.New("unknown notification type")
)
