package payment

import (
	"context"

	"github.com/shopspring/decimal"

	domorder "example.com/shop-checkout/app/internal/domain/order"
	dompayment "example.com/shop-checkout/app/internal/domain/payment"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domorder.Order, error)
}

type PaymentRepository interface {
	dompayment.Repository
}

type Service struct {
	paymentRepo PaymentRepository
	orderRepo   OrderRepository
}

func NewService(paymentRepo PaymentRepository, orderRepo OrderRepository) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// Record appends a payment for an order owned by the user. It is a pure
// ledger append: the order's status and total are left alone, and nothing
// stops a second payment against the same order.
func (s *Service) Record(ctx context.Context, userID, orderID int64, amount decimal.Decimal, status string) (*dompayment.Payment, error) {
	if !amount.IsPositive() {
		return nil, dompayment.ErrInvalidAmount
	}
	if status == "" {
		return nil, dompayment.ErrStatusRequired
	}

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domorder.ErrOrderNotOwned
	}

	return s.paymentRepo.Create(ctx, &dompayment.Payment{
		OrderID: orderID,
		UserID:  userID,
		Amount:  amount,
		Status:  status,
	})
}
