// Package pricing derives sale prices and document totals from
// cost/retail/discount inputs. Every derived figure flows through here so the
// transaction amount fields and quotation line items cannot drift apart.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeRetail is returned when a retail price below zero is supplied.
	ErrNegativeRetail = errors.New("retail price must not be negative")
	// ErrDiscountRange is returned when a discount percentage falls outside [0,100].
	ErrDiscountRange = errors.New("discount percentage must be between 0 and 100")
	// ErrQuantityRange is returned when a quantity below one is supplied.
	ErrQuantityRange = errors.New("quantity must be at least 1")
)

var hundred = decimal.NewFromInt(100)

// SalePrice derives the price a line sells at: retail reduced by the discount
// percentage. The result is never negative and never exceeds the retail price.
func SalePrice(retailPrice, discountPercentage decimal.Decimal) (decimal.Decimal, error) {
	if retailPrice.IsNegative() {
		return decimal.Zero, ErrNegativeRetail
	}
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(hundred) {
		return decimal.Zero, ErrDiscountRange
	}
	factor := hundred.Sub(discountPercentage).Div(hundred)
	return retailPrice.Mul(factor).Round(2), nil
}

// LineTotal multiplies a derived sale price by its quantity.
func LineTotal(salePrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, ErrQuantityRange
	}
	return salePrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2), nil
}

// Line is the minimal shape DocumentTotal needs from a priced line item.
type Line struct {
	SalePrice decimal.Decimal
	Quantity  int
}

// DocumentTotal sums line totals over the given set. It is synchronous and
// recomputed from scratch on every call; no running total is kept anywhere.
func DocumentTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}
