package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domorder "example.com/shop-checkout/app/internal/domain/order"
)

type mockOrderRepository struct {
	orders map[int64]*domorder.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[int64]*domorder.Order)}
}

func (m *mockOrderRepository) CreateFromCart(ctx context.Context, userID int64, paymentMethod string) (*domorder.Order, error) {
	return nil, domorder.ErrEmptyCart
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

func (m *mockOrderRepository) add(id, userID int64, status domorder.Status, createdAt time.Time) {
	m.orders[id] = &domorder.Order{
		ID:            id,
		UserID:        userID,
		Status:        status,
		PaymentMethod: "card",
		TotalAmount:   decimal.RequireFromString("25.00"),
		CreatedAt:     createdAt,
	}
}

func TestConfirm_PendingBecomesConfirmed(t *testing.T) {
	repo := newMockOrderRepository()
	repo.add(1, 100, domorder.StatusPending, time.Now())
	svc := NewService(repo)

	o, err := svc.Confirm(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, domorder.StatusConfirmed, o.Status)
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	repo := newMockOrderRepository()
	repo.add(1, 100, domorder.StatusPending, time.Now())
	svc := NewService(repo)

	_, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), 1)
	require.ErrorIs(t, err, domorder.ErrAlreadyConfirmed)

	o, err := svc.Get(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, domorder.StatusConfirmed, o.Status, "status must be unchanged")
}

func TestConfirm_CancelledOrder(t *testing.T) {
	repo := newMockOrderRepository()
	repo.add(1, 100, domorder.StatusCancelled, time.Now())
	svc := NewService(repo)

	_, err := svc.Confirm(context.Background(), 1)

	require.ErrorIs(t, err, domorder.ErrOrderCancelled)
}

func TestConfirm_OrderNotFound(t *testing.T) {
	svc := NewService(newMockOrderRepository())

	_, err := svc.Confirm(context.Background(), 42)

	require.ErrorIs(t, err, domorder.ErrOrderNotFound)
}

func TestCancel_HasNoStatusGuard(t *testing.T) {
	repo := newMockOrderRepository()
	repo.add(1, 100, domorder.StatusConfirmed, time.Now())
	repo.add(2, 100, domorder.StatusCancelled, time.Now())
	svc := NewService(repo)

	// Cancelling a confirmed or already-cancelled order succeeds.
	for _, id := range []int64{1, 2} {
		o, err := svc.Cancel(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, domorder.StatusCancelled, o.Status)
	}
}

func TestCancel_OrderNotFound(t *testing.T) {
	svc := NewService(newMockOrderRepository())

	_, err := svc.Cancel(context.Background(), 42)

	require.ErrorIs(t, err, domorder.ErrOrderNotFound)
}

func TestGet_EnforcesOwnership(t *testing.T) {
	repo := newMockOrderRepository()
	repo.add(1, 100, domorder.StatusPending, time.Now())
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 200, 1)
	require.ErrorIs(t, err, domorder.ErrOrderNotOwned)

	o, err := svc.Get(context.Background(), 100, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), o.ID)
}

func TestLatest_MostRecentWins(t *testing.T) {
	repo := newMockOrderRepository()
	now := time.Now()
	repo.add(1, 100, domorder.StatusConfirmed, now.Add(-time.Hour))
	repo.add(2, 100, domorder.StatusPending, now)
	repo.add(3, 200, domorder.StatusPending, now.Add(time.Hour))
	svc := NewService(repo)

	o, err := svc.Latest(context.Background(), 100)

	require.NoError(t, err)
	require.Equal(t, int64(2), o.ID)
}

func TestLatest_NoOrders(t *testing.T) {
	svc := NewService(newMockOrderRepository())

	_, err := svc.Latest(context.Background(), 100)

	require.ErrorIs(t, err, domorder.ErrNoOrders)
}
