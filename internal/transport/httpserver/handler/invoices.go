package handler

import (
	"errors"
	"net/http"

	billingdomain "club-app-go/internal/domain/billing"
	"github.com/go-chi/chi/v5"
)

type setStatusRequest struct {
	Status string `json:"status"`
}

type flagInvoiceRequest struct {
	Reason string `json:"reason"`
}

type refundRequestRequest struct {
	Reason string `json:"reason"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type invoiceListResponse struct {
	Items []billingdomain.Invoice `json:"items"`
	Total int64                   `json:"total"`
}

func (h *Handlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
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
	flagged, err := parseBoolParam(query.Get("flagged"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid flagged filter")
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

	status := billingdomain.PaymentStatus(query.Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "unknown payment status")
		return
	}

	if !actor.IsAdmin {
		memberID = actor.ID
	}

	items, total, err := h.Billing.ListInvoices(r.Context(), billingdomain.ListFilter{
		MemberID: memberID,
		Status:   status,
		Flagged:  flagged,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.log.InternalError("billing: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, invoiceListResponse{Items: items, Total: total})
}

func (h *Handlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	invoice, err := h.Billing.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, billingdomain.ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
			return
		}
		h.log.InternalError("billing: get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if !actor.IsAdmin && invoice.MemberID != actor.ID {
		writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) SetInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	invoice, err := h.Billing.SetStatus(r.Context(), invoiceID, billingdomain.PaymentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid_request", "unknown payment status")
		case errors.Is(err, billingdomain.ErrInvoiceNotFound):
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
		default:
			h.log.InternalError("billing: set status failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) FlagInvoice(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req flagInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	invoice, err := h.Billing.Flag(r.Context(), invoiceID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrEmptyReason):
			writeError(w, http.StatusBadRequest, "empty_reason", "a flag reason is required")
		case errors.Is(err, billingdomain.ErrInvoiceNotFound):
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
		default:
			h.log.InternalError("billing: flag failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) UnflagInvoice(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	invoice, err := h.Billing.Unflag(r.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, billingdomain.ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
			return
		}
		h.log.InternalError("billing: unflag failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) UpdateInvoiceNotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	invoice, err := h.Billing.UpdateNotes(r.Context(), invoiceID, req.Notes)
	if err != nil {
		if errors.Is(err, billingdomain.ErrInvoiceNotFound) {
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
			return
		}
		h.log.InternalError("billing: update notes failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) RequestInvoiceRefund(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req refundRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	invoice, err := h.Billing.RequestRefund(r.Context(), actor.ID, invoiceID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrEmptyReason):
			writeError(w, http.StatusBadRequest, "empty_reason", "a refund reason is required")
		case errors.Is(err, billingdomain.ErrInvoiceNotFound):
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
		case errors.Is(err, billingdomain.ErrIllegalTransition):
			h.log.BusinessError("billing: refund request rejected", err, "invoice_id", invoiceID)
			writeError(w, http.StatusConflict, "illegal_transition", "only a paid invoice can be sent for refund")
		default:
			h.log.InternalError("billing: refund request failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handlers) ApproveInvoiceRefund(w http.ResponseWriter, r *http.Request) {
	h.resolveRefund(w, r, true)
}

func (h *Handlers) DenyInvoiceRefund(w http.ResponseWriter, r *http.Request) {
	h.resolveRefund(w, r, false)
}

func (h *Handlers) resolveRefund(w http.ResponseWriter, r *http.Request, approve bool) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	invoiceID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var invoice *billingdomain.Invoice
	if approve {
		invoice, err = h.Billing.ApproveRefund(r.Context(), invoiceID)
	} else {
		invoice, err = h.Billing.DenyRefund(r.Context(), invoiceID)
	}
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrInvoiceNotFound):
			writeError(w, http.StatusNotFound, "invoice_not_found", "invoice not found")
		case errors.Is(err, billingdomain.ErrIllegalTransition):
			writeError(w, http.StatusConflict, "illegal_transition", "invoice has no pending refund request")
		default:
			h.log.InternalError("billing: resolve refund failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}
