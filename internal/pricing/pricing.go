// Package pricing holds the pure money math for the storefront: unit
// prices after discount, cart subtotals, and the delivery surcharge.
// Nothing here touches the database.
package pricing

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// Orders at or above the threshold ship free; below it a flat
	// charge applies.
	freeDeliveryThreshold = decimal.NewFromInt(1000)
	flatDeliveryCharge    = decimal.NewFromInt(100)
)

// Line is one cart or order line as the calculator sees it.
type Line struct {
	UnitPrice   decimal.Decimal
	DiscountPct int
	Qty         int
}

// FinalPrice returns price - price*discountPct/100. The percentage is
// clamped into [0,100]; storage only enforces non-negative, so values
// above 100 would otherwise produce a negative price.
func FinalPrice(price decimal.Decimal, discountPct int) decimal.Decimal {
	if discountPct <= 0 {
		return price
	}
	if discountPct > 100 {
		discountPct = 100
	}
	discount := price.Mul(decimal.NewFromInt(int64(discountPct))).Div(hundred)
	return price.Sub(discount)
}

// LineTotal is the discounted unit price times quantity.
func LineTotal(l Line) decimal.Decimal {
	return FinalPrice(l.UnitPrice, l.DiscountPct).Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Subtotal sums the line totals.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l))
	}
	return total
}

// DeliveryCharge is zero once the subtotal reaches the free-delivery
// threshold, otherwise the flat charge.
func DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeDeliveryThreshold) {
		return decimal.Zero
	}
	return flatDeliveryCharge
}

// Total is subtotal plus its delivery charge.
func Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(DeliveryCharge(subtotal))
}
