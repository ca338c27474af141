package members

import (
	"context"
	"time"
)

type Repository interface {
	CreateMember(ctx context.Context, member *Member) error
	GetMemberByID(ctx context.Context, memberID uint) (*Member, error)
	GetMemberByToken(ctx context.Context, token string) (*Member, error)
	ListMembers(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	UpdateMember(ctx context.Context, member *Member) error
	CountMembersByEmail(ctx context.Context, email string, excludeID uint) (int64, error)

	// ListExpiringLicenses returns license holders whose expiry falls in
	// [now, until], ordered soonest-first.
	ListExpiringLicenses(ctx context.Context, now, until time.Time) ([]Member, error)
}
