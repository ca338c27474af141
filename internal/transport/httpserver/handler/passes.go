package handler

import (
	"errors"
	"net/http"

	passesdomain "club-app-go/internal/domain/passes"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createPassRequest struct {
	MemberID      uint            `json:"member_id"`
	ItemName      string          `json:"item_name"`
	TotalQuantity int             `json:"total_quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

type passListResponse struct {
	Items []passesdomain.Pass `json:"items"`
	Total int64               `json:"total"`
}

func (h *Handlers) ListPasses(w http.ResponseWriter, r *http.Request) {
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

	// Member-facing reads are always scoped to the caller's own id.
	if !actor.IsAdmin {
		memberID = actor.ID
	}

	items, total, err := h.Passes.ListPasses(r.Context(), passesdomain.ListFilter{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.InternalError("passes: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, passListResponse{Items: items, Total: total})
}

func (h *Handlers) GetPass(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	passID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pass, err := h.Passes.GetPass(r.Context(), passID)
	if err != nil {
		if errors.Is(err, passesdomain.ErrPassNotFound) {
			writeError(w, http.StatusNotFound, "pass_not_found", "pass not found")
			return
		}
		h.log.InternalError("passes: get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if !actor.IsAdmin && pass.MemberID != actor.ID {
		writeError(w, http.StatusNotFound, "pass_not_found", "pass not found")
		return
	}

	writeJSON(w, http.StatusOK, pass)
}

func (h *Handlers) CreatePass(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req createPassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	pass, err := h.Passes.CreatePass(r.Context(), passesdomain.CreatePassInput{
		MemberID:      req.MemberID,
		ItemName:      req.ItemName,
		TotalQuantity: req.TotalQuantity,
		UnitPrice:     req.UnitPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, passesdomain.ErrInvalidQuantity), errors.Is(err, passesdomain.ErrItemNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("passes: create failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, pass)
}

func (h *Handlers) ConsumePassUse(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	passID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if !actor.IsAdmin {
		pass, err := h.Passes.GetPass(r.Context(), passID)
		if err != nil || pass.MemberID != actor.ID {
			writeError(w, http.StatusNotFound, "pass_not_found", "pass not found")
			return
		}
	}

	pass, err := h.Passes.ConsumeUse(r.Context(), passID)
	if err != nil {
		switch {
		case errors.Is(err, passesdomain.ErrPassNotFound):
			writeError(w, http.StatusNotFound, "pass_not_found", "pass not found")
		case errors.Is(err, passesdomain.ErrPassExhausted):
			h.log.BusinessError("passes: consume rejected", err, "pass_id", passID)
			writeError(w, http.StatusConflict, "pass_exhausted", "no uses remaining on this pass")
		default:
			h.log.InternalError("passes: consume failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, pass)
}

func (h *Handlers) RefundPass(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	passID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Passes.Refund(r.Context(), passID); err != nil {
		if errors.Is(err, passesdomain.ErrPassNotFound) {
			writeError(w, http.StatusNotFound, "pass_not_found", "pass not found")
			return
		}
		h.log.InternalError("passes: refund failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
