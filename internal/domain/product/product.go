package product

import "github.com/shopspring/decimal"

// Product is the read-only view of the external catalog the cart and
// checkout consume: existence and current unit price.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
