package members

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  uint
	members map[uint]*Member
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, members: make(map[uint]*Member)}
}

func (f *fakeRepo) CreateMember(ctx context.Context, member *Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	member.ID = f.nextID
	f.nextID++
	stored := *member
	f.members[member.ID] = &stored
	return nil
}

func (f *fakeRepo) GetMemberByID(ctx context.Context, memberID uint) (*Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[memberID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (f *fakeRepo) GetMemberByToken(ctx context.Context, token string) (*Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, member := range f.members {
		if member.APIToken == token {
			copied := *member
			return &copied, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeRepo) ListMembers(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Member
	for _, member := range f.members {
		if filter.Approved != nil && member.Approved != *filter.Approved {
			continue
		}
		out = append(out, *member)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateMember(ctx context.Context, member *Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	stored := *member
	f.members[member.ID] = &stored
	return nil
}

func (f *fakeRepo) CountMembersByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, member := range f.members {
		if member.Email == email && member.ID != excludeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListExpiringLicenses(ctx context.Context, now, until time.Time) ([]Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Member
	for _, member := range f.members {
		if !member.LicenseHeld || member.LicenseExpiry == nil {
			continue
		}
		expiry := *member.LicenseExpiry
		if expiry.Before(now) || expiry.After(until) {
			continue
		}
		out = append(out, *member)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LicenseExpiry.Before(*out[j].LicenseExpiry) })
	return out, nil
}

type recordingNotifier struct {
	expiring []uint
}

func (n *recordingNotifier) CertificationExpiring(ctx context.Context, member *Member) error {
	n.expiring = append(n.expiring, member.ID)
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingNotifier{})

	member, err := svc.Register(context.Background(), RegisterInput{Name: "  Alex  ", Email: "Alex@Example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if member.Name != "Alex" {
		t.Fatalf("expected trimmed name, got %q", member.Name)
	}
	if member.Email != "alex@example.com" {
		t.Fatalf("expected lowercased email, got %q", member.Email)
	}
	if member.APIToken == "" {
		t.Fatal("expected a generated api token")
	}
	if member.Approved {
		t.Fatal("new members must start unapproved")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingNotifier{})

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "", Email: "a@b.c"}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Alex", Email: "  "}); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingNotifier{})

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Alex", Email: "alex@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Other", Email: "ALEX@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestApprove(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingNotifier{})

	member, err := svc.Register(context.Background(), RegisterInput{Name: "Alex", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	approved, err := svc.Approve(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !approved.Approved {
		t.Fatal("expected member approved")
	}

	if _, err := svc.Approve(context.Background(), 404); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestMemberByToken(t *testing.T) {
	svc := NewService(newFakeRepo(), &recordingNotifier{})

	member, err := svc.Register(context.Background(), RegisterInput{Name: "Alex", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.MemberByToken(context.Background(), member.APIToken)
	if err != nil {
		t.Fatalf("MemberByToken: %v", err)
	}
	if got.ID != member.ID {
		t.Fatalf("expected member %d, got %d", member.ID, got.ID)
	}

	if _, err := svc.MemberByToken(context.Background(), ""); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound for blank token, got %v", err)
	}
	if _, err := svc.MemberByToken(context.Background(), "bogus"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound for unknown token, got %v", err)
	}
}

func TestNotifyExpiringCertifications(t *testing.T) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier)

	now := time.Now().UTC()
	soon := now.Add(10 * 24 * time.Hour)
	far := now.Add(90 * 24 * time.Hour)

	register := func(name, email string, expiry *time.Time, held bool) *Member {
		member, err := svc.Register(context.Background(), RegisterInput{Name: name, Email: email})
		if err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
		member.LicenseHeld = held
		member.LicenseExpiry = expiry
		if err := repo.UpdateMember(context.Background(), member); err != nil {
			t.Fatalf("UpdateMember(%s): %v", name, err)
		}
		return member
	}

	expiring := register("Expiring", "expiring@example.com", &soon, true)
	register("Far", "far@example.com", &far, true)
	register("NoLicense", "none@example.com", &soon, false)

	sent, err := svc.NotifyExpiringCertifications(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("NotifyExpiringCertifications: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 notification, got %d", sent)
	}
	if len(notifier.expiring) != 1 || notifier.expiring[0] != expiring.ID {
		t.Fatalf("expected notification for member %d, got %v", expiring.ID, notifier.expiring)
	}
}
