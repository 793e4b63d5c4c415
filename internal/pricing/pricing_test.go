package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"inkwell/internal/pricing"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		price string
		pct   int
		want  string
	}{
		{"500", 10, "450"},
		{"300", 0, "300"},
		{"100", 100, "0"},
		{"199.99", 25, "149.9925"},
		{"100", -5, "100"},  // negative treated as no discount
		{"100", 150, "0"},   // clamped, never negative
		{"0", 50, "0"},
	}
	for _, c := range cases {
		got := pricing.FinalPrice(d(c.price), c.pct)
		if !got.Equal(d(c.want)) {
			t.Errorf("FinalPrice(%s, %d) = %s, want %s", c.price, c.pct, got, c.want)
		}
		if got.GreaterThan(d(c.price)) {
			t.Errorf("FinalPrice(%s, %d) = %s exceeds base price", c.price, c.pct, got)
		}
	}
}

func TestDeliveryChargeBoundary(t *testing.T) {
	cases := []struct {
		subtotal string
		charge   string
		total    string
	}{
		{"999", "100", "1099"},
		{"1000", "0", "1000"},
		{"1000.01", "0", "1000.01"},
		{"0", "100", "100"},
	}
	for _, c := range cases {
		charge := pricing.DeliveryCharge(d(c.subtotal))
		if !charge.Equal(d(c.charge)) {
			t.Errorf("DeliveryCharge(%s) = %s, want %s", c.subtotal, charge, c.charge)
		}
		total := pricing.Total(d(c.subtotal))
		if !total.Equal(d(c.total)) {
			t.Errorf("Total(%s) = %s, want %s", c.subtotal, total, c.total)
		}
	}
}

// Scenario from the storefront: 2x product A (500, 10% off) plus 1x
// product B (300) reaches free delivery exactly.
func TestSubtotalScenario(t *testing.T) {
	lines := []pricing.Line{
		{UnitPrice: d("500"), DiscountPct: 10, Qty: 2},
		{UnitPrice: d("300"), DiscountPct: 0, Qty: 1},
	}
	sub := pricing.Subtotal(lines)
	if !sub.Equal(d("1200")) {
		t.Fatalf("subtotal = %s, want 1200", sub)
	}
	if !pricing.DeliveryCharge(sub).IsZero() {
		t.Fatalf("expected free delivery at subtotal %s", sub)
	}
	if !pricing.Total(sub).Equal(d("1200")) {
		t.Fatalf("total = %s, want 1200", pricing.Total(sub))
	}
}

func TestSubtotalEmpty(t *testing.T) {
	if !pricing.Subtotal(nil).IsZero() {
		t.Fatal("empty subtotal should be zero")
	}
}
