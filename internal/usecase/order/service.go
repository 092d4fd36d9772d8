package order

import (
	"context"

	domorder "example.com/shop-checkout/app/internal/domain/order"
)

type Service struct {
	repo domorder.Repository
}

func NewService(repo domorder.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the order with its items. Orders are only visible to the user
// who placed them.
func (s *Service) Get(ctx context.Context, userID, orderID int64) (*domorder.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domorder.ErrOrderNotOwned
	}
	return o, nil
}

func (s *Service) Latest(ctx context.Context, userID int64) (*domorder.Order, error) {
	return s.repo.LatestByUser(ctx, userID)
}

func (s *Service) Confirm(ctx context.Context, orderID int64) (*domorder.Order, error) {
	return s.repo.Confirm(ctx, orderID)
}

// Cancel has no status guard: any existing order ends up CANCELLED, matching
// the asymmetry with Confirm in the original product behavior.
func (s *Service) Cancel(ctx context.Context, orderID int64) (*domorder.Order, error) {
	return s.repo.Cancel(ctx, orderID)
}
