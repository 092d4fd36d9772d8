package http

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type recordPaymentRequest struct {
	OrderID int64           `json:"order_id" validate:"required,gt=0"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status" validate:"required"`
}

func (a *API) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req recordPaymentRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.paymentSvc.Record(r.Context(), user.UserID, req.OrderID, req.Amount, req.Status)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapPayment(p))
}
