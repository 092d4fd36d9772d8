package cart

import "github.com/shopspring/decimal"

type Item struct {
	ProductID int64
	Quantity  int64
}

// PricedItem is a cart row joined with the current catalog price.
type PricedItem struct {
	Item
	ProductName string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type Cart struct {
	CartID     string
	UserID     int64
	Items      []PricedItem
	TotalItems int64
	TotalPrice decimal.Decimal
}
