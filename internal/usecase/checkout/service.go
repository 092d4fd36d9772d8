package checkout

import (
	"context"

	domorder "example.com/shop-checkout/app/internal/domain/order"
)

type OrderRepository interface {
	CreateFromCart(ctx context.Context, userID int64, paymentMethod string) (*domorder.Order, error)
}

type Service struct {
	orderRepo OrderRepository
}

func NewService(orderRepo OrderRepository) *Service {
	return &Service{orderRepo: orderRepo}
}

// Checkout converts the user's cart into a PENDING order. The repository
// reads the cart, snapshots prices, writes the order and drains the cart in
// one transaction, so a failure leaves the cart exactly as it was.
func (s *Service) Checkout(ctx context.Context, userID int64, paymentMethod string) (*domorder.Order, error) {
	if paymentMethod == "" {
		return nil, domorder.ErrPaymentRequired
	}
	return s.orderRepo.CreateFromCart(ctx, userID, paymentMethod)
}
