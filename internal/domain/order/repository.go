package order

import "context"

type Repository interface {
	// CreateFromCart converts all of the user's cart rows into one order in
	// a single transaction: the cart is read joined with current prices,
	// one order row and one item row per cart line are inserted, and the
	// cart is drained. Everything commits together or not at all.
	// ErrEmptyCart when the user has no cart rows.
	CreateFromCart(ctx context.Context, userID int64, paymentMethod string) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	// LatestByUser returns the most recently created order, ties broken by
	// id. ErrNoOrders when the user has never checked out.
	LatestByUser(ctx context.Context, userID int64) (*Order, error)
	// Confirm transitions PENDING -> CONFIRMED. ErrAlreadyConfirmed or
	// ErrOrderCancelled when the order is in a terminal status.
	Confirm(ctx context.Context, id int64) (*Order, error)
	// Cancel sets CANCELLED on any existing order, whatever its status.
	Cancel(ctx context.Context, id int64) (*Order, error)
}
