package mysql

import (
	"context"
	"database/sql"

	dompayment "example.com/shop-checkout/app/internal/domain/payment"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *dompayment.Payment) (*dompayment.Payment, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO payments (order_id, user_id, amount, status)
        VALUES (?, ?, ?, ?)
    `, p.OrderID, p.UserID, p.Amount, p.Status)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `
        SELECT id, order_id, user_id, amount, status, created_at
        FROM payments WHERE id = ?
    `, id)

	var created dompayment.Payment
	if err := row.Scan(&created.ID, &created.OrderID, &created.UserID, &created.Amount, &created.Status, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}
