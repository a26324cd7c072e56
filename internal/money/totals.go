// AngelaMos | 2026
// totals.go

// Package money holds the monetary arithmetic shared by documents and
// invoices. All amounts are decimal; floats never touch totals.
package money

import (
	"github.com/shopspring/decimal"
)

const DefaultTaxRate = 20

type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

type Totals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal is quantity × unit price, exact. Rounding happens only on
// the aggregate figures.
func LineTotal(l Line) decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Calculate computes the document totals: subtotal is the sum of line
// totals, the discount is an absolute amount capped at the subtotal
// (the taxable base never goes negative), tax applies to the
// post-discount base, and every reported figure is rounded half-up to
// cents.
func Calculate(
	lines []Line,
	discount decimal.Decimal,
	taxRate decimal.Decimal,
) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	base := subtotal.Sub(discount)

	taxAmount := base.Mul(taxRate).Div(decimal.NewFromInt(100))

	total := base.Add(taxAmount)

	return Totals{
		Subtotal:  subtotal.Round(2),
		Discount:  discount.Round(2),
		TaxAmount: taxAmount.Round(2),
		Total:     total.Round(2),
	}
}
