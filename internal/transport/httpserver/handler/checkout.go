package handler

import (
	"errors"
	"net/http"

	checkoutdomain "club-app-go/internal/domain/checkout"
	membersdomain "club-app-go/internal/domain/members"
	passesdomain "club-app-go/internal/domain/passes"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	MemberID      uint            `json:"member_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
}

// CompleteCheckout is the entry point the (simulated) payment flow calls on
// success: it creates the pass and its invoice together.
func (h *Handlers) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := caller(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	// Members buy for themselves; only admins buy on someone's behalf.
	memberID := req.MemberID
	if !actor.IsAdmin || memberID == 0 {
		memberID = actor.ID
	}

	result, err := h.Checkout.Checkout(r.Context(), checkoutdomain.CheckoutInput{
		MemberID:      memberID,
		ItemName:      req.ItemName,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, passesdomain.ErrInvalidQuantity), errors.Is(err, passesdomain.ErrItemNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, checkoutdomain.ErrMemberNotApproved):
			writeError(w, http.StatusForbidden, "member_not_approved", "membership not approved")
		default:
			h.log.InternalError("checkout: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
