package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/shop-checkout/app/internal/domain/cart"
	domorder "example.com/shop-checkout/app/internal/domain/order"
	dompayment "example.com/shop-checkout/app/internal/domain/payment"
	domproduct "example.com/shop-checkout/app/internal/domain/product"
	"example.com/shop-checkout/app/internal/infra/metrics"
	cartuc "example.com/shop-checkout/app/internal/usecase/cart"
	checkoutuc "example.com/shop-checkout/app/internal/usecase/checkout"
	orderuc "example.com/shop-checkout/app/internal/usecase/order"
	paymentuc "example.com/shop-checkout/app/internal/usecase/payment"
)

type API struct {
	cartSvc     *cartuc.Service
	checkoutSvc *checkoutuc.Service
	orderSvc    *orderuc.Service
	paymentSvc  *paymentuc.Service
	validator   *validator.Validate
	tokenSvc    TokenService
	httpMetrics *metrics.HTTPMetrics
}

type Dependencies struct {
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
	OrderService    *orderuc.Service
	PaymentService  *paymentuc.Service
	TokenService    TokenService
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	return &API{
		cartSvc:     deps.CartService,
		checkoutSvc: deps.CheckoutService,
		orderSvc:    deps.OrderService,
		paymentSvc:  deps.PaymentService,
		tokenSvc:    deps.TokenService,
		httpMetrics: deps.HTTPMetrics,
		validator:   validate,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))
	if a.httpMetrics != nil {
		r.Use(a.httpMetrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)

			pr.Route("/me/cart", func(cr chi.Router) {
				cr.Get("/", a.handleGetCart)
				cr.Delete("/", a.handleClearCart)
				cr.Post("/items", a.handleAddCartItem)
				cr.Get("/items/{productID}", a.handleGetCartItem)
				cr.Put("/items/{productID}", a.handleUpdateCartItem)
				cr.Delete("/items/{productID}", a.handleRemoveCartItem)
			})

			pr.Post("/me/checkout", a.handleCheckout)

			pr.Route("/me/orders", func(or chi.Router) {
				or.Get("/latest", a.handleGetLatestOrder)
				or.Get("/{id}", a.handleGetOrder)
				or.Post("/{id}/confirm", a.handleConfirmOrder)
				or.Post("/{id}/cancel", a.handleCancelOrder)
			})

			pr.Post("/me/payments", a.handleRecordPayment)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapCartItem(item *domcart.PricedItem) map[string]any {
	return map[string]any{
		"product_id": item.ProductID,
		"name":       item.ProductName,
		"price":      item.UnitPrice,
		"quantity":   item.Quantity,
		"line_total": item.LineTotal,
	}
}

func mapCart(cart *domcart.Cart) map[string]any {
	items := make([]map[string]any, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, mapCartItem(&cart.Items[i]))
	}
	return map[string]any{
		"cart_id":     cart.CartID,
		"user_id":     cart.UserID,
		"items":       items,
		"total_items": cart.TotalItems,
		"total_price": cart.TotalPrice,
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		})
	}

	return map[string]any{
		"order_id":       o.ID,
		"user_id":        o.UserID,
		"status":         o.Status,
		"payment_method": o.PaymentMethod,
		"total_amount":   o.TotalAmount,
		"created_at":     o.CreatedAt,
		"items":          items,
	}
}

func mapPayment(p *dompayment.Payment) map[string]any {
	return map[string]any{
		"payment_id": p.ID,
		"order_id":   p.OrderID,
		"user_id":    p.UserID,
		"amount":     p.Amount,
		"status":     p.Status,
		"created_at": p.CreatedAt,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domorder.ErrPaymentRequired),
		errors.Is(err, dompayment.ErrInvalidAmount),
		errors.Is(err, dompayment.ErrStatusRequired):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcart.ErrItemNotFound),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domorder.ErrNoOrders):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domorder.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domorder.ErrAlreadyConfirmed),
		errors.Is(err, domorder.ErrOrderCancelled):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domorder.ErrOrderNotOwned):
		respondError(w, http.StatusForbidden, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
