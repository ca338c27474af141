package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"club-app-go/internal/config"
	membersdomain "club-app-go/internal/domain/members"
	"club-app-go/pkg/logger"
)

// Member is the authenticated caller, threaded through the request context
// so handlers can pass the acting identity explicitly into every operation.
type Member struct {
	ID      uint
	Name    string
	IsAdmin bool
}

type MemberResolver interface {
	MemberByToken(ctx context.Context, token string) (*membersdomain.Member, error)
}

type TokenAuth struct {
	resolver   MemberResolver
	skipAuth   bool
	mockMember Member
	log        logger.Logger
}

func NewTokenAuth(cfg config.AuthConfig, resolver MemberResolver, log logger.Logger) *TokenAuth {
	return &TokenAuth{
		resolver: resolver,
		skipAuth: cfg.SkipAuth,
		mockMember: Member{
			ID:      cfg.MockMemberID,
			Name:    "mock member",
			IsAdmin: cfg.MockIsAdmin,
		},
		log: log,
	}
}

func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockMember.ID == 0 {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock member id not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), a.mockMember)))
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
			return
		}

		member, err := a.resolver.MemberByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, membersdomain.ErrMemberNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
				return
			}
			a.log.InternalError("auth: token lookup failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if !member.Approved {
			writeError(w, http.StatusForbidden, "member_not_approved", "membership not approved")
			return
		}

		caller := Member{
			ID:      member.ID,
			Name:    member.Name,
			IsAdmin: member.IsAdmin,
		}
		next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), caller)))
	})
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

type contextKey int

const memberKey contextKey = iota

func WithMember(ctx context.Context, member Member) context.Context {
	return context.WithValue(ctx, memberKey, member)
}

func MemberFromContext(ctx context.Context) (Member, bool) {
	member, ok := ctx.Value(memberKey).(Member)
	return member, ok
}
