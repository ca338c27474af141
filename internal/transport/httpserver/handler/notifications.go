package handler

import (
	"errors"
	"net/http"

	notificationsdomain "club-app-go/internal/domain/notifications"
	"github.com/go-chi/chi/v5"
)

type notifyRequest struct {
	Type              string `json:"type"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	RelatedMemberID   *uint  `json:"related_member_id"`
	RelatedPurchaseID *uint  `json:"related_purchase_id"`
	RelatedDocumentID *uint  `json:"related_document_id"`
	ActionRequired    bool   `json:"action_required"`
	ActionType        string `json:"action_type"`
}

type notificationListResponse struct {
	Items []notificationsdomain.Notification `json:"items"`
	Total int64                              `json:"total"`
}

type resolvedNotificationResponse struct {
	Notification *notificationsdomain.Notification       `json:"notification"`
	References   *notificationsdomain.ResolvedReferences `json:"references"`
}

func (h *Handlers) ListActiveNotifications(w http.ResponseWriter, r *http.Request) {
	h.listNotifications(w, r, false)
}

func (h *Handlers) ListArchivedNotifications(w http.ResponseWriter, r *http.Request) {
	h.listNotifications(w, r, true)
}

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request, archived bool) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	memberID, err := parseUintParam(query.Get("member_id"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid member_id")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	// Non-admins only ever see notifications about themselves.
	if !actor.IsAdmin {
		memberID = actor.ID
	}

	filter := notificationsdomain.ListFilter{
		RelatedMemberID: memberID,
		Limit:           limit,
		Offset:          offset,
	}

	var (
		items []notificationsdomain.Notification
		total int64
	)
	if archived {
		items, total, err = h.Notifications.ArchivedNotifications(r.Context(), filter)
	} else {
		items, total, err = h.Notifications.ActiveNotifications(r.Context(), filter)
	}
	if err != nil {
		h.log.InternalError("notifications: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, notificationListResponse{Items: items, Total: total})
}

func (h *Handlers) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	count, err := h.Notifications.UnreadCount(r.Context())
	if err != nil {
		h.log.InternalError("notifications: unread count failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *Handlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req notifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	notification, err := h.Notifications.Notify(r.Context(), notificationsdomain.NotifyInput{
		Type:              notificationsdomain.Type(req.Type),
		Title:             req.Title,
		Message:           req.Message,
		RelatedMemberID:   req.RelatedMemberID,
		RelatedPurchaseID: req.RelatedPurchaseID,
		RelatedDocumentID: req.RelatedDocumentID,
		ActionRequired:    req.ActionRequired,
		ActionType:        req.ActionType,
	})
	if err != nil {
		switch {
		case errors.Is(err, notificationsdomain.ErrTitleRequired), errors.Is(err, notificationsdomain.ErrInvalidType):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("notifications: create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, notification)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	h.mutateNotification(w, r, "read", func(id uint) (*notificationsdomain.Notification, error) {
		return h.Notifications.MarkRead(r.Context(), id)
	})
}

func (h *Handlers) ArchiveNotification(w http.ResponseWriter, r *http.Request) {
	h.mutateNotification(w, r, "archive", func(id uint) (*notificationsdomain.Notification, error) {
		return h.Notifications.Archive(r.Context(), id)
	})
}

func (h *Handlers) UnarchiveNotification(w http.ResponseWriter, r *http.Request) {
	h.mutateNotification(w, r, "unarchive", func(id uint) (*notificationsdomain.Notification, error) {
		return h.Notifications.Unarchive(r.Context(), id)
	})
}

func (h *Handlers) mutateNotification(w http.ResponseWriter, r *http.Request, op string, fn func(uint) (*notificationsdomain.Notification, error)) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	notificationID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	notification, err := fn(notificationID)
	if err != nil {
		if errors.Is(err, notificationsdomain.ErrNotificationNotFound) {
			// A stale id (double-tap archive on a deleted row) is benign.
			writeError(w, http.StatusNotFound, "notification_not_found", "notification not found")
			return
		}
		h.log.InternalError("notifications: "+op+" failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, notification)
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	updated, err := h.Notifications.MarkAllRead(r.Context())
	if err != nil {
		h.log.InternalError("notifications: mark all read failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	notificationID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Notifications.Delete(r.Context(), notificationID); err != nil {
		switch {
		case errors.Is(err, notificationsdomain.ErrNotificationNotFound):
			writeError(w, http.StatusNotFound, "notification_not_found", "notification not found")
		case errors.Is(err, notificationsdomain.ErrNotArchived):
			writeError(w, http.StatusConflict, "not_archived", "only archived notifications can be deleted")
		default:
			h.log.InternalError("notifications: delete failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResolveNotification dereferences the notification's weak references at
// view time; referents deleted since creation come back as null slots.
func (h *Handlers) ResolveNotification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	notificationID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	notification, err := h.Notifications.GetNotification(r.Context(), notificationID)
	if err != nil {
		if errors.Is(err, notificationsdomain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification_not_found", "notification not found")
			return
		}
		h.log.InternalError("notifications: get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	references, err := h.Resolver.Resolve(r.Context(), notification)
	if err != nil {
		h.log.InternalError("notifications: resolve failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, resolvedNotificationResponse{
		Notification: notification,
		References:   references,
	})
}
