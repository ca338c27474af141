package handler

import (
	"net/http"
	"time"

	"club-app-go/internal/config"
	billingdomain "club-app-go/internal/domain/billing"
	checkoutdomain "club-app-go/internal/domain/checkout"
	documentsdomain "club-app-go/internal/domain/documents"
	membersdomain "club-app-go/internal/domain/members"
	notificationsdomain "club-app-go/internal/domain/notifications"
	passesdomain "club-app-go/internal/domain/passes"
	"club-app-go/internal/transport/httpserver/middleware"
	"club-app-go/pkg/logger"
)

type Handlers struct {
	Members       *membersdomain.Service
	Documents     *documentsdomain.Service
	Passes        *passesdomain.Service
	Billing       *billingdomain.Service
	Notifications *notificationsdomain.Service
	Checkout      *checkoutdomain.Service
	Resolver      *notificationsdomain.Resolver

	expiryWindow time.Duration
	log          logger.Logger
}

func New(
	cfg config.Config,
	members *membersdomain.Service,
	documents *documentsdomain.Service,
	passes *passesdomain.Service,
	billing *billingdomain.Service,
	notifications *notificationsdomain.Service,
	checkout *checkoutdomain.Service,
	resolver *notificationsdomain.Resolver,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Members:       members,
		Documents:     documents,
		Passes:        passes,
		Billing:       billing,
		Notifications: notifications,
		Checkout:      checkout,
		Resolver:      resolver,
		expiryWindow:  cfg.Notifications.ExpiryWindow,
		log:           log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// caller pulls the authenticated member out of the request context; a
// missing entry means the auth middleware did not run.
func caller(w http.ResponseWriter, r *http.Request) (middleware.Member, bool) {
	member, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
	}
	return member, ok
}

// requireAdmin is the boundary check for administrative operations.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Member, bool) {
	member, ok := caller(w, r)
	if !ok {
		return member, false
	}
	if !member.IsAdmin {
		writeError(w, http.StatusForbidden, "admin_only", "administrator access required")
		return member, false
	}
	return member, true
}
