package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	domorder "example.com/shop-checkout/app/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateFromCart is the checkout transaction. The cart is read joined with
// current prices under FOR UPDATE, so the snapshot, the order writes and the
// cart drain see one consistent view; a concurrent add/remove/checkout for
// the same user blocks until this commits. A second checkout then finds the
// cart drained and gets ErrEmptyCart, so one cart never yields two orders.
func (r *OrderRepository) CreateFromCart(ctx context.Context, userID int64, paymentMethod string) (_ *domorder.Order, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, `
        SELECT ci.product_id, ci.quantity, p.price
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.user_id = ?
        ORDER BY ci.product_id
        FOR UPDATE
    `, userID)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	var items []domorder.OrderItem
	total := decimal.Zero
	for rows.Next() {
		var item domorder.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			rows.Close()
			retErr = err
			return nil, retErr
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		retErr = err
		return nil, retErr
	}
	rows.Close()

	if len(items) == 0 {
		retErr = domorder.ErrEmptyCart
		return nil, retErr
	}

	res, err := tx.ExecContext(ctx, `
        INSERT INTO orders (user_id, status, payment_method, total_amount)
        VALUES (?, ?, ?, ?)
    `, userID, domorder.StatusPending, paymentMethod, total)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		retErr = err
		return nil, retErr
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, product_id, quantity, unit_price)
            VALUES (?, ?, ?, ?)
        `, orderID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			retErr = err
			return nil, retErr
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		retErr = err
		return nil, retErr
	}

	if err = tx.Commit(); err != nil {
		retErr = err
		return nil, retErr
	}

	return r.GetByID(ctx, orderID)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, status, payment_method, total_amount, created_at
        FROM orders WHERE id = ?
    `, id)
	return r.scanOrder(ctx, row)
}

func (r *OrderRepository) LatestByUser(ctx context.Context, userID int64) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, status, payment_method, total_amount, created_at
        FROM orders
        WHERE user_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `, userID)

	o, err := r.scanOrder(ctx, row)
	if errors.Is(err, domorder.ErrOrderNotFound) {
		return nil, domorder.ErrNoOrders
	}
	return o, err
}

// Confirm relies on a conditional UPDATE for the PENDING guard, so two
// concurrent confirms cannot both succeed.
func (r *OrderRepository) Confirm(ctx context.Context, id int64) (*domorder.Order, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders SET status = ? WHERE id = ? AND status = ?
    `, domorder.StatusConfirmed, id, domorder.StatusPending)
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		var status domorder.Status
		row := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id)
		if err := row.Scan(&status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domorder.ErrOrderNotFound
			}
			return nil, err
		}
		if status == domorder.StatusCancelled {
			return nil, domorder.ErrOrderCancelled
		}
		return nil, domorder.ErrAlreadyConfirmed
	}

	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Cancel(ctx context.Context, id int64) (*domorder.Order, error) {
	if _, err := r.db.ExecContext(ctx, `
        UPDATE orders SET status = ? WHERE id = ?
    `, domorder.StatusCancelled, id); err != nil {
		return nil, err
	}
	// GetByID doubles as the existence check: zero affected rows can also
	// mean the order was already cancelled.
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) scanOrder(ctx context.Context, row *sql.Row) (*domorder.Order, error) {
	var o domorder.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.TotalAmount, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.listOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) listOrderItems(ctx context.Context, orderID int64) ([]domorder.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, order_id, product_id, quantity, unit_price
        FROM order_items WHERE order_id = ?
        ORDER BY id
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domorder.OrderItem
	for rows.Next() {
		var item domorder.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
