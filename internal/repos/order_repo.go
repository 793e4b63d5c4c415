package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"inkwell/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderItemSnapshot is one price-frozen line captured at checkout.
// DiscountPrice is nil when the product carried no discount.
type OrderItemSnapshot struct {
	ID            string           `db:"id"`
	OrderID       string           `db:"order_id"`
	ProductID     *string          `db:"product_id"`
	Quantity      int              `db:"quantity"`
	Price         decimal.Decimal  `db:"price"`
	DiscountPrice *decimal.Decimal `db:"discount_price"`
}

// OrderItemView is a snapshot joined with whatever is left of the
// product. Name falls back when the product was deleted after the
// order.
type OrderItemView struct {
	Name          string           `db:"name"`
	Quantity      int              `db:"quantity"`
	Price         decimal.Decimal  `db:"price"`
	DiscountPrice *decimal.Decimal `db:"discount_price"`
}

// FinalPrice is the unit price the customer actually paid.
func (v OrderItemView) FinalPrice() decimal.Decimal {
	if v.DiscountPrice != nil {
		return *v.DiscountPrice
	}
	return v.Price
}

func (v OrderItemView) Total() decimal.Decimal {
	return v.FinalPrice().Mul(decimal.NewFromInt(int64(v.Quantity)))
}

type OrderSummary struct {
	PublicID   string          `db:"public_id"`
	FullName   string          `db:"full_name"`
	Status     string          `db:"status"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  string          `db:"created_at"`
}

const orderCols = `
  id, public_id, COALESCE(user_id,'') AS user_id,
  full_name, email, phone_number, address, city, postal_code, country,
  status, delivery_charge, total_price,
  created_at, COALESCE(updated_at,'') AS updated_at`

// PublicIDExists feeds the order-id generator's uniqueness check.
func (r *OrderRepo) PublicIDExists(publicID string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE public_id = ?`, publicID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateWithItems persists the order header, its item snapshots and
// the cart clear in one transaction, so a partial snapshot can never
// be observed.
func (r *OrderRepo) CreateWithItems(o domain.Order, items []OrderItemSnapshot, cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, public_id, user_id, full_name, email, phone_number,
	                     address, city, postal_code, country, status,
	                     delivery_charge, total_price)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.PublicID, o.UserID, o.FullName, o.Email, o.PhoneNumber,
		o.Address, o.City, o.PostalCode, o.Country, o.Status,
		o.DeliveryCharge, o.TotalPrice); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(id, order_id, product_id, quantity, price, discount_price)
		  VALUES(?,?,?,?,?,?)
		`, it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price, it.DiscountPrice); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepo) GetByPublicID(publicID string) (domain.Order, []OrderItemView, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE public_id = ?`, publicID); err != nil {
		return domain.Order{}, nil, err
	}

	items := []OrderItemView{}
	if err := r.db.Select(&items, `
	  SELECT COALESCE(p.name, 'Deleted Product') AS name,
	         oi.quantity, oi.price, oi.discount_price
	  FROM order_items oi
	  LEFT JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.id
	`, o.ID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	out := []OrderSummary{}
	err := r.db.Select(&out, `
	  SELECT public_id, full_name, status, total_price, created_at
	  FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []OrderSummary{}
	err := r.db.Select(&out, `
	  SELECT public_id, full_name, status, total_price, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus sets any of the four statuses; there are no transition
// rules.
func (r *OrderRepo) UpdateStatus(publicID, status string) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE public_id = ?
	`, status, publicID)
	return err
}
