package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"inkwell/internal/repos"
	"inkwell/internal/services"
)

// memdb opens a seeded in-memory database. One connection, so every
// query and transaction sees the same memory store.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartService(db *sqlx.DB) *services.CartService {
	return services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
}

func TestCartAddMergesSameProduct(t *testing.T) {
	db := memdb(t)
	cartSvc := newCartService(db)

	if err := cartSvc.Add("u-ada", "nb-a5-dot", 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add("u-ada", "nb-a5-dot", 3); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View("u-ada")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 {
		t.Fatalf("want one merged line, got %d", len(cv.Lines))
	}
	if cv.Lines[0].Qty != 5 {
		t.Fatalf("want qty=5 after merge, got %d", cv.Lines[0].Qty)
	}
}

func TestCartAddUnknownOrUnavailable(t *testing.T) {
	db := memdb(t)
	cartSvc := newCartService(db)

	if err := cartSvc.Add("u-ada", "no-such-product", 1); err != services.ErrNotFound {
		t.Fatalf("want ErrNotFound for unknown product, got %v", err)
	}
	// sketchpad-a3 is seeded with available=0
	if err := cartSvc.Add("u-ada", "sketchpad-a3", 1); err != services.ErrNotFound {
		t.Fatalf("want ErrNotFound for unavailable product, got %v", err)
	}
}

func TestCartRemoveMissingLeavesCartUnchanged(t *testing.T) {
	db := memdb(t)
	cartSvc := newCartService(db)

	if err := cartSvc.Add("u-ada", "nb-a5-dot", 1); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Remove("u-ada", "pen-fountain"); err != services.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	cv, err := cartSvc.View("u-ada")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].ProductID != "nb-a5-dot" {
		t.Fatalf("cart changed by failed removal: %+v", cv.Lines)
	}
}

func TestCartUpdateZeroQtyRemovesLine(t *testing.T) {
	db := memdb(t)
	cartSvc := newCartService(db)

	if err := cartSvc.Add("u-ada", "nb-a5-dot", 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.UpdateQuantity("u-ada", "nb-a5-dot", 0); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View("u-ada")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 0 {
		t.Fatalf("want empty cart, got %+v", cv.Lines)
	}
}

func TestCartViewDiscountAndDelivery(t *testing.T) {
	db := memdb(t)
	cartSvc := newCartService(db)

	// nb-a5-dot: 500 at 10% off = 450/unit
	if err := cartSvc.Add("u-ada", "nb-a5-dot", 2); err != nil {
		t.Fatal(err)
	}

	cv, err := cartSvc.View("u-ada")
	if err != nil {
		t.Fatal(err)
	}
	if !cv.Lines[0].UnitFinal.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("want unit 450, got %s", cv.Lines[0].UnitFinal)
	}
	if !cv.Subtotal.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("want subtotal 900, got %s", cv.Subtotal)
	}
	if !cv.DeliveryCharge.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("want delivery 100 under the threshold, got %s", cv.DeliveryCharge)
	}
	if !cv.Total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("want total 1000, got %s", cv.Total)
	}

	// push the subtotal to exactly 1200: delivery becomes free
	if err := cartSvc.Add("u-ada", "nb-a4-ruled", 1); err != nil {
		t.Fatal(err)
	}
	cv, err = cartSvc.View("u-ada")
	if err != nil {
		t.Fatal(err)
	}
	if !cv.Subtotal.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("want subtotal 1200, got %s", cv.Subtotal)
	}
	if !cv.DeliveryCharge.IsZero() {
		t.Fatalf("want free delivery at 1200, got %s", cv.DeliveryCharge)
	}
	if cv.Count != 3 {
		t.Fatalf("want count 3, got %d", cv.Count)
	}
}
