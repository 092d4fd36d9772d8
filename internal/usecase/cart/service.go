package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domcart "example.com/shop-checkout/app/internal/domain/cart"
	domproduct "example.com/shop-checkout/app/internal/domain/product"
)

type CartRepository interface {
	domcart.Repository
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error)
}

type Service struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewService(cartRepo CartRepository, productRepo ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int64) error {
	if quantity <= 0 {
		return domcart.ErrInvalidQuantity
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.cartRepo.AddItem(ctx, userID, productID, quantity)
}

func (s *Service) GetCart(ctx context.Context, userID int64) (*domcart.Cart, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &domcart.Cart{
		CartID:     fmt.Sprintf("cart_%s", uuid.NewString()),
		UserID:     userID,
		Items:      make([]domcart.PricedItem, 0, len(items)),
		TotalPrice: decimal.Zero,
	}
	if len(items) == 0 {
		return cart, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	productMap := make(map[int64]*domproduct.Product)
	for _, p := range products {
		productMap[p.ID] = p
	}

	for _, item := range items {
		p, ok := productMap[item.ProductID]
		if !ok {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(item.Quantity))
		cart.Items = append(cart.Items, domcart.PricedItem{
			Item:        item,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			LineTotal:   lineTotal,
		})
		cart.TotalItems += item.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(lineTotal)
	}

	return cart, nil
}

func (s *Service) GetItem(ctx context.Context, userID, productID int64) (*domcart.PricedItem, error) {
	item, err := s.cartRepo.GetItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domcart.PricedItem{
		Item:        *item,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		LineTotal:   p.Price.Mul(decimal.NewFromInt(item.Quantity)),
	}, nil
}

// UpdateItem replaces the stored quantity, unlike AddItem it never increments.
func (s *Service) UpdateItem(ctx context.Context, userID, productID int64, quantity int64) error {
	if quantity <= 0 {
		return domcart.ErrInvalidQuantity
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

// RemoveItem reports whether the product was actually in the cart. Removing
// an absent item is not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (bool, error) {
	return s.cartRepo.RemoveItem(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}
