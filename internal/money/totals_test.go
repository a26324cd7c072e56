// AngelaMos | 2026
// totals_test.go

package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotalExact(t *testing.T) {
	cases := []struct {
		qty, price, want string
	}{
		{"2", "10", "20"},
		{"1", "5", "5"},
		{"3", "2", "6"},
		{"0.5", "19.99", "9.995"},
		{"0", "100", "0"},
	}

	for _, tc := range cases {
		got := LineTotal(Line{Quantity: dec(tc.qty), UnitPrice: dec(tc.price)})
		assert.True(t, got.Equal(dec(tc.want)),
			"qty=%s price=%s got=%s want=%s", tc.qty, tc.price, got, tc.want)
	}
}

func TestCalculateReferenceCase(t *testing.T) {
	// 2×10 + 1×5 + 3×2 = 31, discount 1 → 30, 20% tax → 36.00
	lines := []Line{
		{Quantity: dec("2"), UnitPrice: dec("10")},
		{Quantity: dec("1"), UnitPrice: dec("5")},
		{Quantity: dec("3"), UnitPrice: dec("2")},
	}

	totals := Calculate(lines, dec("1"), dec("20"))

	require.True(t, totals.Subtotal.Equal(dec("31")), "subtotal=%s", totals.Subtotal)
	require.True(t, totals.Discount.Equal(dec("1")))
	require.True(t, totals.TaxAmount.Equal(dec("6")), "tax=%s", totals.TaxAmount)
	require.True(t, totals.Total.Equal(dec("36")), "total=%s", totals.Total)
}

func TestCalculateDiscountCappedAtSubtotal(t *testing.T) {
	lines := []Line{{Quantity: dec("1"), UnitPrice: dec("10")}}

	totals := Calculate(lines, dec("25"), dec("20"))

	assert.True(t, totals.Subtotal.Equal(dec("10")))
	assert.True(t, totals.Discount.Equal(dec("10")), "discount=%s", totals.Discount)
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero(), "total=%s", totals.Total)
}

func TestCalculateNegativeDiscountIgnored(t *testing.T) {
	lines := []Line{{Quantity: dec("1"), UnitPrice: dec("10")}}

	totals := Calculate(lines, dec("-5"), dec("0"))

	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("10")))
}

func TestCalculateRoundsHalfUp(t *testing.T) {
	// 3 × 3.335 = 10.005; 0% tax → total rounds up to 10.01.
	lines := []Line{{Quantity: dec("3"), UnitPrice: dec("3.335")}}

	totals := Calculate(lines, decimal.Zero, decimal.Zero)

	assert.Equal(t, "10.01", totals.Total.StringFixed(2))
	assert.Equal(t, "10.01", totals.Subtotal.StringFixed(2))
}

func TestCalculateZeroLines(t *testing.T) {
	totals := Calculate(nil, decimal.Zero, dec("20"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCalculateTaxOnDiscountedBase(t *testing.T) {
	// 100 − 20 = 80 base; 10% → 8; total 88.
	lines := []Line{{Quantity: dec("10"), UnitPrice: dec("10")}}

	totals := Calculate(lines, dec("20"), dec("10"))

	assert.True(t, totals.TaxAmount.Equal(dec("8")), "tax=%s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(dec("88")), "total=%s", totals.Total)
}
