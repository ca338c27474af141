package members

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notifier receives membership events that warrant an administrative
// notification. Satisfied by the notifications package.
type Notifier interface {
	CertificationExpiring(ctx context.Context, member *Member) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	count, err := s.repo.CountMembersByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	member := Member{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		APIToken: uuid.NewString(),
	}

	if err := s.repo.CreateMember(ctx, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *Service) Approve(ctx context.Context, memberID uint) (*Member, error) {
	member, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member.Approved = true
	member.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) UpdateMember(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	member, err := s.repo.GetMemberByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	member.Name = name
	member.Phone = strings.TrimSpace(input.Phone)
	member.LicenseHeld = input.LicenseHeld
	member.LicenseExpiry = input.LicenseExpiry
	member.QualificationDone = input.QualificationDone
	member.QualificationDate = input.QualificationDate
	member.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) GetMember(ctx context.Context, memberID uint) (*Member, error) {
	return s.repo.GetMemberByID(ctx, memberID)
}

func (s *Service) MemberByToken(ctx context.Context, token string) (*Member, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMemberNotFound
	}
	return s.repo.GetMemberByToken(ctx, token)
}

func (s *Service) ListMembers(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	return s.repo.ListMembers(ctx, filter)
}

func (s *Service) ExpiringCertifications(ctx context.Context, window time.Duration) ([]Member, error) {
	now := time.Now().UTC()
	return s.repo.ListExpiringLicenses(ctx, now, now.Add(window))
}

// NotifyExpiringCertifications emits one expiry notification per member
// whose license runs out inside the window, and reports how many it sent.
func (s *Service) NotifyExpiringCertifications(ctx context.Context, window time.Duration) (int, error) {
	expiring, err := s.ExpiringCertifications(ctx, window)
	if err != nil {
		return 0, err
	}
	if s.notifier == nil {
		return 0, nil
	}

	sent := 0
	for i := range expiring {
		if err := s.notifier.CertificationExpiring(ctx, &expiring[i]); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}
