package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger row. Recording one never touches the
// referenced order's status.
type Payment struct {
	ID        int64
	OrderID   int64
	UserID    int64
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}
