package mysql

import (
	"context"
	"database/sql"
	"errors"

	domcart "example.com/shop-checkout/app/internal/domain/cart"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) AddItem(ctx context.Context, userID int64, productID int64, quantity int64) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
    `, userID, productID, quantity)
	return err
}

func (r *CartRepository) ListItems(ctx context.Context, userID int64) ([]domcart.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT product_id, quantity
        FROM cart_items
        WHERE user_id = ?
        ORDER BY product_id
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domcart.Item
	for rows.Next() {
		var item domcart.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) GetItem(ctx context.Context, userID int64, productID int64) (*domcart.Item, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT product_id, quantity
        FROM cart_items
        WHERE user_id = ? AND product_id = ?
    `, userID, productID)

	var item domcart.Item
	if err := row.Scan(&item.ProductID, &item.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcart.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID int64, productID int64, quantity int64) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE cart_items SET quantity = ?
        WHERE user_id = ? AND product_id = ?
    `, quantity, userID, productID)
	if err != nil {
		return err
	}

	// MySQL reports 0 affected rows both when the row is absent and when the
	// quantity is unchanged, so a miss needs an existence check.
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetItem(ctx, userID, productID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID int64, productID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        DELETE FROM cart_items
        WHERE user_id = ? AND product_id = ?
    `, userID, productID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
