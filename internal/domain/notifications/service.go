package notifications

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify is the single entry point for notification creation; every
// trigger (checkout, chargeback, document upload, expiry sweep) goes
// through it so the defaults live in one place. Notifications are always
// created unread and unarchived.
func (s *Service) Notify(ctx context.Context, input NotifyInput) (*Notification, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	kind := input.Type
	if kind == "" {
		kind = TypeOther
	}
	if !kind.Valid() {
		return nil, ErrInvalidType
	}

	notification := Notification{
		Type:              kind,
		Title:             title,
		Message:           strings.TrimSpace(input.Message),
		RelatedMemberID:   input.RelatedMemberID,
		RelatedPurchaseID: input.RelatedPurchaseID,
		RelatedDocumentID: input.RelatedDocumentID,
		ActionRequired:    input.ActionRequired,
		ActionType:        strings.TrimSpace(input.ActionType),
	}

	if err := s.repo.CreateNotification(ctx, &notification); err != nil {
		return nil, err
	}

	return &notification, nil
}

// MarkRead is idempotent; re-reading an already-read notification is a
// successful no-op.
func (s *Service) MarkRead(ctx context.Context, notificationID uint) (*Notification, error) {
	updated, err := s.repo.SetRead(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotificationNotFound
	}

	return s.repo.GetNotificationByID(ctx, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

// Archive leaves IsRead untouched: an archived notification can still be
// unread. Archiving twice is a successful no-op.
func (s *Service) Archive(ctx context.Context, notificationID uint) (*Notification, error) {
	return s.setArchived(ctx, notificationID, true)
}

func (s *Service) Unarchive(ctx context.Context, notificationID uint) (*Notification, error) {
	return s.setArchived(ctx, notificationID, false)
}

func (s *Service) setArchived(ctx context.Context, notificationID uint, archived bool) (*Notification, error) {
	updated, err := s.repo.SetArchived(ctx, notificationID, archived)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotificationNotFound
	}

	return s.repo.GetNotificationByID(ctx, notificationID)
}

// Delete permanently removes an archived notification. Active notifications
// must be archived first.
func (s *Service) Delete(ctx context.Context, notificationID uint) error {
	deleted, err := s.repo.DeleteArchived(ctx, notificationID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	if _, err := s.repo.GetNotificationByID(ctx, notificationID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}

	return ErrNotArchived
}

func (s *Service) GetNotification(ctx context.Context, notificationID uint) (*Notification, error) {
	return s.repo.GetNotificationByID(ctx, notificationID)
}

func (s *Service) ActiveNotifications(ctx context.Context, filter ListFilter) ([]Notification, int64, error) {
	return s.repo.ListNotifications(ctx, false, filter)
}

func (s *Service) ArchivedNotifications(ctx context.Context, filter ListFilter) ([]Notification, int64, error) {
	return s.repo.ListNotifications(ctx, true, filter)
}

func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}
