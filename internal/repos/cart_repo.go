package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is one cart row joined with its live product.
type CartLine struct {
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Slug        string          `db:"slug"`
	ImagePath   string          `db:"image_path"`
	Price       decimal.Decimal `db:"price"`
	DiscountPct int             `db:"discount_pct"`
	Qty         int             `db:"qty"`
}

// EnsureCart returns the user's cart id, creating the cart on first
// interaction. Idempotent.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err == nil {
		return cartID, nil
	} else if err != sql.ErrNoRows {
		return "", err
	}
	cartID = "cart-" + userID
	if _, err := r.db.Exec(`
	  INSERT INTO carts(id, user_id) VALUES(?, ?)
	  ON CONFLICT(user_id) DO NOTHING
	`, cartID, userID); err != nil {
		return "", err
	}
	// Re-read in case a concurrent request created it first.
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err != nil {
		return "", err
	}
	return cartID, nil
}

// UpsertItem adds qty to an existing line or inserts a new one. The
// (cart_id, product_id) primary key guarantees a single row per
// product.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id, product_id, qty)
	  VALUES(?,?,?)
	  ON CONFLICT(cart_id, product_id) DO UPDATE
	  SET qty = cart_items.qty + excluded.qty
	`, cartID, productID, qty)
	return err
}

// SetQty replaces the quantity of an existing line. Reports
// sql.ErrNoRows when the line does not exist.
func (r *CartRepo) SetQty(cartID, productID string, qty int) error {
	res, err := r.db.Exec(`
	  UPDATE cart_items SET qty = ? WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteItem removes a line. Reports sql.ErrNoRows when absent so the
// caller can surface "not in cart" instead of silently succeeding.
func (r *CartRepo) DeleteItem(cartID, productID string) error {
	res, err := r.db.Exec(`
	  DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?
	`, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Lines returns the cart contents in insertion order.
func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.product_id, p.name, p.slug, p.image_path,
	         p.price, p.discount_pct, ci.qty
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.added_at, ci.product_id
	`, cartID)
	return lines, err
}

// Count is the total quantity across the cart, for the nav badge.
func (r *CartRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COALESCE(SUM(ci.qty), 0)
	  FROM carts c JOIN cart_items ci ON ci.cart_id = c.id
	  WHERE c.user_id = ?
	`, userID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}
