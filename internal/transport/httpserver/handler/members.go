package handler

import (
	"errors"
	"net/http"
	"time"

	membersdomain "club-app-go/internal/domain/members"
	"github.com/go-chi/chi/v5"
)

type registerMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type registeredMemberResponse struct {
	Member   *membersdomain.Member `json:"member"`
	APIToken string                `json:"api_token"`
}

type updateMemberRequest struct {
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	LicenseHeld       bool    `json:"license_held"`
	LicenseExpiry     *string `json:"license_expiry"`
	QualificationDone bool    `json:"qualification_done"`
	QualificationDate *string `json:"qualification_date"`
}

type memberListResponse struct {
	Items []membersdomain.Member `json:"items"`
	Total int64                  `json:"total"`
}

func (h *Handlers) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var req registerMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	member, err := h.Members.Register(r.Context(), membersdomain.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, membersdomain.ErrNameRequired), errors.Is(err, membersdomain.ErrEmailRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, membersdomain.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.log.InternalError("members: register failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	// The token is returned once, at registration.
	writeJSON(w, http.StatusCreated, registeredMemberResponse{Member: member, APIToken: member.APIToken})
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	query := r.URL.Query()
	approved, err := parseBoolParam(query.Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid approved filter")
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

	items, total, err := h.Members.ListMembers(r.Context(), membersdomain.ListFilter{
		Approved: approved,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.InternalError("members: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, memberListResponse{Items: items, Total: total})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	memberID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	// Members may read their own record; everything else is admin territory.
	if !actor.IsAdmin && actor.ID != memberID {
		writeError(w, http.StatusForbidden, "admin_only", "administrator access required")
		return
	}

	member, err := h.Members.GetMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members: get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handlers) ApproveMember(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	memberID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	member, err := h.Members.Approve(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members: approve failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	memberID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	licenseExpiry, err := parseOptionalDate(req.LicenseExpiry)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid license expiry date")
		return
	}
	qualificationDate, err := parseOptionalDate(req.QualificationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid qualification date")
		return
	}

	member, err := h.Members.UpdateMember(r.Context(), membersdomain.UpdateMemberInput{
		ID:                memberID,
		Name:              req.Name,
		Phone:             req.Phone,
		LicenseHeld:       req.LicenseHeld,
		LicenseExpiry:     licenseExpiry,
		QualificationDone: req.QualificationDone,
		QualificationDate: qualificationDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, membersdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		default:
			h.log.InternalError("members: update failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handlers) ExpiringCertifications(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	window, err := expiryWindowFromQuery(r, h.expiryWindow)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid days")
		return
	}

	items, err := h.Members.ExpiringCertifications(r.Context(), window)
	if err != nil {
		h.log.InternalError("members: expiring certifications failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, memberListResponse{Items: items, Total: int64(len(items))})
}

func (h *Handlers) NotifyExpiringCertifications(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	window, err := expiryWindowFromQuery(r, h.expiryWindow)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid days")
		return
	}

	sent, err := h.Members.NotifyExpiringCertifications(r.Context(), window)
	if err != nil {
		h.log.InternalError("members: expiry sweep failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"notified": sent})
}

func expiryWindowFromQuery(r *http.Request, fallback time.Duration) (time.Duration, error) {
	days, err := parseIntParam(r.URL.Query().Get("days"), 0)
	if err != nil {
		return 0, err
	}
	if days == 0 {
		return fallback, nil
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDateParam(*value)
}
