// Package pricing applies the store's order-level pricing rules: the flat
// delivery surcharge and the loyalty discount.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Rules defines the order-level adjustments applied on top of item prices.
type Rules struct {
	DeliverySurcharge      decimal.Decimal
	LoyaltyThreshold       int
	LoyaltyDiscountPercent decimal.Decimal
}

// Default holds the store's pricing rules: 10 for delivery and 10% off
// for customers with five or more orders.
var Default = Rules{
	DeliverySurcharge:      decimal.NewFromInt(10),
	LoyaltyThreshold:       5,
	LoyaltyDiscountPercent: decimal.NewFromInt(10),
}

// Breakdown itemises how a total was reached.
type Breakdown struct {
	Subtotal  decimal.Decimal
	Surcharge decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// Loyal reports whether the loyalty discount applies.
func (b Breakdown) Loyal() bool {
	return !b.Discount.IsZero()
}

// IsLoyal reports whether orderCount qualifies for the loyalty discount.
func (r Rules) IsLoyal(orderCount int) bool {
	return r.LoyaltyThreshold > 0 && orderCount >= r.LoyaltyThreshold
}

// Quote prices an order. The order of operations is fixed: subtotal, then
// the delivery surcharge, then the loyalty discount on the surcharged sum.
// No rounding is applied.
func (r Rules) Quote(prices []decimal.Decimal, delivery bool, orderCount int) Breakdown {
	b := Breakdown{
		Subtotal:  calcSubtotal(prices),
		Surcharge: zero,
		Discount:  zero,
	}

	total := b.Subtotal
	if delivery {
		b.Surcharge = r.DeliverySurcharge
		total = total.Add(b.Surcharge)
	}

	if r.IsLoyal(orderCount) {
		discounted := total.Mul(hundred.Sub(r.LoyaltyDiscountPercent)).Div(hundred)
		b.Discount = total.Sub(discounted)
		total = discounted
	}

	b.Total = floorAtZero(total)
	return b
}

// calcSubtotal returns the sum of the given prices.
func calcSubtotal(prices []decimal.Decimal) decimal.Decimal {
	sum := zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	return sum
}

// floorAtZero clamps negative values to zero.
func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	return d
}
