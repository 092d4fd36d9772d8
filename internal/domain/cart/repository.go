package cart

import "context"

type Repository interface {
	// AddItem upserts: an existing (user, product) row has its quantity
	// incremented, otherwise a new row is created.
	AddItem(ctx context.Context, userID int64, productID int64, quantity int64) error
	ListItems(ctx context.Context, userID int64) ([]Item, error)
	// GetItem returns ErrItemNotFound when the product is not in the cart.
	GetItem(ctx context.Context, userID int64, productID int64) (*Item, error)
	// UpdateQuantity replaces the stored quantity, it does not increment.
	// ErrItemNotFound when the row does not exist.
	UpdateQuantity(ctx context.Context, userID int64, productID int64, quantity int64) error
	// RemoveItem reports whether a row was actually deleted.
	RemoveItem(ctx context.Context, userID int64, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) error
}
