package http

import (
	"net/http"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"required"`
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cartSvc.AddItem(r.Context(), user.UserID, req.ProductID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	cart, err := a.cartSvc.GetCart(r.Context(), user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart))
}

func (a *API) handleGetCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	item, err := a.cartSvc.GetItem(r.Context(), user.UserID, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartItem(item))
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cartSvc.UpdateItem(r.Context(), user.UserID, productID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	removed, err := a.cartSvc.RemoveItem(r.Context(), user.UserID, productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	if err := a.cartSvc.Clear(r.Context(), user.UserID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
