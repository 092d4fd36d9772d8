package http

import (
	"net/http"
)

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req checkoutRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	order, err := a.checkoutSvc.Checkout(r.Context(), user.UserID, req.PaymentMethod)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapOrder(order))
}
