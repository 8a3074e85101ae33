package product

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SpecialPrice returns price minus discount percent of price, rounded to two
// decimal places.
func SpecialPrice(price, discount decimal.Decimal) decimal.Decimal {
	off := price.Mul(discount).Div(hundred)
	return price.Sub(off).Round(2)
}
