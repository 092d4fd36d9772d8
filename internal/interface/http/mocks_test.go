package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/shopspring/decimal"

	domcart "example.com/shop-checkout/app/internal/domain/cart"
	domorder "example.com/shop-checkout/app/internal/domain/order"
	dompayment "example.com/shop-checkout/app/internal/domain/payment"
	domproduct "example.com/shop-checkout/app/internal/domain/product"
	"example.com/shop-checkout/app/internal/infra/security"
	cartuc "example.com/shop-checkout/app/internal/usecase/cart"
	checkoutuc "example.com/shop-checkout/app/internal/usecase/checkout"
	orderuc "example.com/shop-checkout/app/internal/usecase/order"
	paymentuc "example.com/shop-checkout/app/internal/usecase/payment"
)

type mockCartRepository struct {
	items map[int64]map[int64]int64 // userID -> productID -> quantity
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{items: make(map[int64]map[int64]int64)}
}

func (m *mockCartRepository) AddItem(ctx context.Context, userID, productID, quantity int64) error {
	if m.items[userID] == nil {
		m.items[userID] = make(map[int64]int64)
	}
	m.items[userID][productID] += quantity
	return nil
}

func (m *mockCartRepository) ListItems(ctx context.Context, userID int64) ([]domcart.Item, error) {
	var items []domcart.Item
	for productID, quantity := range m.items[userID] {
		items = append(items, domcart.Item{ProductID: productID, Quantity: quantity})
	}
	return items, nil
}

func (m *mockCartRepository) GetItem(ctx context.Context, userID, productID int64) (*domcart.Item, error) {
	if qty, ok := m.items[userID][productID]; ok {
		return &domcart.Item{ProductID: productID, Quantity: qty}, nil
	}
	return nil, domcart.ErrItemNotFound
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, userID, productID, quantity int64) error {
	if _, ok := m.items[userID][productID]; !ok {
		return domcart.ErrItemNotFound
	}
	m.items[userID][productID] = quantity
	return nil
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, userID, productID int64) (bool, error) {
	if _, ok := m.items[userID][productID]; !ok {
		return false, nil
	}
	delete(m.items[userID], productID)
	return true, nil
}

func (m *mockCartRepository) Clear(ctx context.Context, userID int64) error {
	delete(m.items, userID)
	return nil
}

type mockProductRepository struct {
	products map[int64]*domproduct.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: map[int64]*domproduct.Product{
			1: {ID: 1, Name: "Product A", Price: decimal.RequireFromString("10.00")},
			2: {ID: 2, Name: "Product B", Price: decimal.RequireFromString("5.00")},
		},
	}
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if p, ok := m.products[id]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cloned := *p
			result = append(result, &cloned)
		}
	}
	return result, nil
}

// mockOrderRepository keeps the same all-or-nothing contract as the MySQL
// repository: CreateFromCart snapshots prices and drains the cart together.
type mockOrderRepository struct {
	carts    *mockCartRepository
	products *mockProductRepository
	orders   map[int64]*domorder.Order
	nextID   int64
}

func newMockOrderRepository(carts *mockCartRepository, products *mockProductRepository) *mockOrderRepository {
	return &mockOrderRepository{
		carts:    carts,
		products: products,
		orders:   make(map[int64]*domorder.Order),
		nextID:   1,
	}
}

func (m *mockOrderRepository) CreateFromCart(ctx context.Context, userID int64, paymentMethod string) (*domorder.Order, error) {
	items, _ := m.carts.ListItems(ctx, userID)
	if len(items) == 0 {
		return nil, domorder.ErrEmptyCart
	}

	total := decimal.Zero
	orderItems := make([]domorder.OrderItem, 0, len(items))
	for _, item := range items {
		p, err := m.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(item.Quantity)))
		orderItems = append(orderItems, domorder.OrderItem{
			OrderID:   m.nextID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		})
	}

	order := &domorder.Order{
		ID:            m.nextID,
		UserID:        userID,
		Status:        domorder.StatusPending,
		PaymentMethod: paymentMethod,
		TotalAmount:   total,
		Items:         orderItems,
		CreatedAt:     time.Now(),
	}
	m.orders[m.nextID] = order
	m.nextID++
	_ = m.carts.Clear(ctx, userID)
	return order, nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id int64) (*domorder.Order, error) {
	if o, ok := m.orders[id]; ok {
		cloned := *o
		return &cloned, nil
	}
	return nil, domorder.ErrOrderNotFound
}

func (m *mockOrderRepository) LatestByUser(ctx context.Context, userID int64) (*domorder.Order, error) {
	var latest *domorder.Order
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) ||
			(o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = o
		}
	}
	if latest == nil {
		return nil, domorder.ErrNoOrders
	}
	cloned := *latest
	return &cloned, nil
}

func (m *mockOrderRepository) Confirm(ctx context.Context, id int64) (*domorder.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	switch o.Status {
	case domorder.StatusConfirmed:
		return nil, domorder.ErrAlreadyConfirmed
	case domorder.StatusCancelled:
		return nil, domorder.ErrOrderCancelled
	}
	o.Status = domorder.StatusConfirmed
	cloned := *o
	return &cloned, nil
}

func (m *mockOrderRepository) Cancel(ctx context.Context, id int64) (*domorder.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	o.Status = domorder.StatusCancelled
	cloned := *o
	return &cloned, nil
}

type mockPaymentRepository struct {
	payments []*dompayment.Payment
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *dompayment.Payment) (*dompayment.Payment, error) {
	created := *p
	created.ID = int64(len(m.payments) + 1)
	created.CreatedAt = time.Now()
	m.payments = append(m.payments, &created)
	return &created, nil
}

type testHarness struct {
	api      *API
	carts    *mockCartRepository
	orders   *mockOrderRepository
	payments *mockPaymentRepository
	tokenSvc *security.JWTService
}

func setupAPI() *testHarness {
	carts := newMockCartRepository()
	products := newMockProductRepository()
	orders := newMockOrderRepository(carts, products)
	payments := &mockPaymentRepository{}
	tokenSvc := security.NewJWTService("test-secret", time.Hour)

	api := NewAPI(Dependencies{
		CartService:     cartuc.NewService(carts, products),
		CheckoutService: checkoutuc.NewService(orders),
		OrderService:    orderuc.NewService(orders),
		PaymentService:  paymentuc.NewService(payments, orders),
		TokenService:    tokenSvc,
	})

	return &testHarness{
		api:      api,
		carts:    carts,
		orders:   orders,
		payments: payments,
		tokenSvc: tokenSvc,
	}
}

func (h *testHarness) tokenFor(userID int64) string {
	token, _ := h.tokenSvc.GenerateToken(userID, "buyer@example.com")
	return token
}

func newAuthenticatedRequest(method, path, token string, body any) *http.Request {
	var req *http.Request
	if body != nil {
		payload, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
