package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal statuses never transition back to PENDING.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

type Order struct {
	ID            int64
	UserID        int64
	Status        Status
	PaymentMethod string
	TotalAmount   decimal.Decimal
	Items         []OrderItem
	CreatedAt     time.Time
}

// OrderItem carries the unit price snapshotted at checkout time. It is
// never recomputed from the catalog after creation.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}
