package notifications

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

type fakeRepo struct {
	mu            sync.Mutex
	nextID        uint
	notifications map[uint]*Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, notifications: make(map[uint]*Notification)}
}

func (f *fakeRepo) CreateNotification(ctx context.Context, notification *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = f.nextID
	f.nextID++
	stored := *notification
	f.notifications[notification.ID] = &stored
	return nil
}

func (f *fakeRepo) GetNotificationByID(ctx context.Context, notificationID uint) (*Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification, ok := f.notifications[notificationID]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	copied := *notification
	return &copied, nil
}

func (f *fakeRepo) ListNotifications(ctx context.Context, archived bool, filter ListFilter) ([]Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Notification
	for _, notification := range f.notifications {
		if notification.IsArchived != archived {
			continue
		}
		if filter.RelatedMemberID != 0 {
			if notification.RelatedMemberID == nil || *notification.RelatedMemberID != filter.RelatedMemberID {
				continue
			}
		}
		out = append(out, *notification)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRepo) SetRead(ctx context.Context, notificationID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification, ok := f.notifications[notificationID]
	if !ok {
		return false, nil
	}
	notification.IsRead = true
	return true, nil
}

func (f *fakeRepo) MarkAllRead(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, notification := range f.notifications {
		if !notification.IsRead && !notification.IsArchived {
			notification.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) SetArchived(ctx context.Context, notificationID uint, archived bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification, ok := f.notifications[notificationID]
	if !ok {
		return false, nil
	}
	notification.IsArchived = archived
	return true, nil
}

func (f *fakeRepo) DeleteArchived(ctx context.Context, notificationID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification, ok := f.notifications[notificationID]
	if !ok || !notification.IsArchived {
		return false, nil
	}
	delete(f.notifications, notificationID)
	return true, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, notification := range f.notifications {
		if !notification.IsRead && !notification.IsArchived {
			n++
		}
	}
	return n, nil
}

func mustNotify(t *testing.T, svc *Service, title string) *Notification {
	t.Helper()
	notification, err := svc.Notify(context.Background(), NotifyInput{Type: TypeAlert, Title: title})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	return notification
}

func TestNotifyDefaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	notification, err := svc.Notify(context.Background(), NotifyInput{Title: "  new document  "})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if notification.Title != "new document" {
		t.Fatalf("expected trimmed title, got %q", notification.Title)
	}
	if notification.Type != TypeOther {
		t.Fatalf("expected default type other, got %s", notification.Type)
	}
	if notification.IsRead || notification.IsArchived {
		t.Fatalf("new notification must be unread and unarchived: %+v", notification)
	}
}

func TestNotifyValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	if _, err := svc.Notify(context.Background(), NotifyInput{Title: "   "}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Notify(context.Background(), NotifyInput{Title: "x", Type: Type("broadcast")}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	svc := NewService(newFakeRepo())
	notification := mustNotify(t, svc, "first")

	got, err := svc.MarkRead(context.Background(), notification.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !got.IsRead {
		t.Fatal("expected notification read")
	}

	if _, err := svc.MarkRead(context.Background(), notification.ID); err != nil {
		t.Fatalf("second MarkRead must be a no-op, got %v", err)
	}

	if _, err := svc.MarkRead(context.Background(), 404); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestMarkAllReadLeavesLaterNotificationsUnread(t *testing.T) {
	svc := NewService(newFakeRepo())
	mustNotify(t, svc, "one")
	mustNotify(t, svc, "two")
	mustNotify(t, svc, "three")

	n, err := svc.MarkAllRead(context.Background())
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 marked, got %d", n)
	}

	late := mustNotify(t, svc, "after the sweep")

	count, err := svc.UnreadCount(context.Background())
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 unread, got %d", count)
	}

	got, err := svc.GetNotification(context.Background(), late.ID)
	if err != nil {
		t.Fatalf("GetNotification: %v", err)
	}
	if got.IsRead {
		t.Fatal("notification created after the sweep must stay unread")
	}
}

func TestArchiveDoesNotTouchRead(t *testing.T) {
	svc := NewService(newFakeRepo())
	notification := mustNotify(t, svc, "keepsake")

	archived, err := svc.Archive(context.Background(), notification.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.IsArchived {
		t.Fatal("expected archived")
	}
	if archived.IsRead {
		t.Fatal("archiving must not mark the notification read")
	}

	// Archiving twice is a no-op.
	if _, err := svc.Archive(context.Background(), notification.ID); err != nil {
		t.Fatalf("second Archive: %v", err)
	}

	restored, err := svc.Unarchive(context.Background(), notification.ID)
	if err != nil {
		t.Fatalf("Unarchive: %v", err)
	}
	if restored.IsArchived {
		t.Fatal("expected unarchived")
	}
}

func TestDeleteRequiresArchive(t *testing.T) {
	svc := NewService(newFakeRepo())
	notification := mustNotify(t, svc, "ephemeral")

	if err := svc.Delete(context.Background(), notification.ID); !errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected ErrNotArchived, got %v", err)
	}

	if _, err := svc.Archive(context.Background(), notification.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := svc.Delete(context.Background(), notification.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := svc.Delete(context.Background(), notification.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound after delete, got %v", err)
	}
}

func TestActiveAndArchivedListsAreDisjoint(t *testing.T) {
	svc := NewService(newFakeRepo())
	first := mustNotify(t, svc, "stays active")
	second := mustNotify(t, svc, "gets archived")

	if _, err := svc.Archive(context.Background(), second.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	active, _, err := svc.ActiveNotifications(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("ActiveNotifications: %v", err)
	}
	if len(active) != 1 || active[0].ID != first.ID {
		t.Fatalf("unexpected active list: %+v", active)
	}

	archived, _, err := svc.ArchivedNotifications(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("ArchivedNotifications: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != second.ID {
		t.Fatalf("unexpected archived list: %+v", archived)
	}
}
